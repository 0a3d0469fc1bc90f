/*
Package toolchain describes an Android NDK release on the host system:
where it is downloaded from, where it is installed and where the tools
inside it live. Platform-dependent values are resolved once, from a
per-platform table, so callers never branch on the host OS themselves.
*/
package toolchain
