// Package fssyscall is a POSIX system call compatibility shim providing
// constants and functions not yet exposed uniformly by golang.org/x/sys/unix
// across all platforms this module supports.
package fssyscall
