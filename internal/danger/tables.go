package danger

// Reference policy tables. These are a versioned policy artifact: changes
// here change what every caller auto-approves, so keep the groupings intact
// and prefer adding names through configuration.

// safeCommands are read-only commands.
var safeCommands = []string{
	// Display and output
	"echo", "cat", "less", "more", "head", "tail", "tac", "nl",
	// File and directory information
	"ls", "tree", "pwd", "file", "stat", "du", "df",
	// Search
	"find", "locate", "which", "whereis", "type", "grep", "egrep", "fgrep",
	// Text processing (read-only)
	"wc", "sort", "uniq", "cut", "paste", "column", "tr", "diff", "cmp", "comm",
	// System information
	"whoami", "who", "w", "id", "hostname", "uname", "uptime", "date", "cal", "env", "printenv",
	// Process information
	"ps", "top", "htop", "pgrep", "jobs", "pstree",
	// Network inspection
	"ping", "traceroute", "nslookup", "dig", "host", "netstat", "ss", "ifconfig", "ip",
	// Compressed file viewers
	"zcat", "zless",
	// History and help
	"history", "man", "help", "info", "apropos", "whatis",
	// Checksums
	"md5sum", "sha256sum", "sha1sum", "cksum", "sum",
	// Other
	"bc", "expr", "test", "sleep", "true", "false", "yes", "seq",
	"basename", "dirname", "realpath", "readlink",
}

// unsafeCommands can modify the filesystem or the system.
var unsafeCommands = []string{
	// Creation
	"mkdir", "touch", "mktemp", "mkfifo", "mknod",
	// Deletion
	"rm", "rmdir", "shred",
	// Moving and copying
	"mv", "cp", "rsync", "scp", "install",
	// Editors and stream editors
	"vi", "vim", "nvim", "nano", "emacs", "ed", "pico", "gedit",
	"sed", // with -i
	"awk", // can write files
	"tee",
	// Permissions and ownership
	"chmod", "chown", "chgrp", "chattr", "setfacl",
	// Linking
	"ln", "link", "unlink",
	// Archives and compression
	"tar", "untar", "zip", "unzip", "gzip", "gunzip", "bzip2", "bunzip2",
	"xz", "unxz", "7z", "rar", "unrar",
	// Downloads
	"wget", "curl", "fetch", "aria2c",
	// Low-level disk
	"dd", "truncate", "fallocate",
	// Splitting
	"split", "csplit",
	"sync",
	// Package managers
	"apt", "apt-get", "yum", "dnf", "pacman", "zypper", "brew",
	"pip", "pip3", "npm", "yarn", "gem", "cargo",
	// Build tools and interpreters
	"make", "cmake", "gcc", "g++", "cc", "clang", "javac",
	"python", "perl", "ruby",
	// System administration
	"useradd", "userdel", "usermod", "groupadd", "groupdel", "passwd",
	"mount", "umount", "mkfs", "fdisk", "parted", "swapon", "swapoff",
	"sudo", "doas",
	// Database clients
	"mysql", "psql", "sqlite3", "mongo", "redis-cli",
	// Version control
	"git", "svn", "hg", "cvs",
	// Other
	"patch",
	"cat",    // with redirection
	"echo",   // with redirection
	"printf", // with redirection
}

// changeDirCommands move the shell to the directory named by their operand.
var changeDirCommands = []string{"cd", "pushd"}
