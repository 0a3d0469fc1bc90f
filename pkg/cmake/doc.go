/*
Package cmake drives CMake and Ninja to cross-compile a shared library with
an Android NDK, then strips the result with the NDK's llvm-strip.

A build is three stages run in order: configure, build and strip. Configure
and build must succeed for the next stage to start; the strip stage is best
effort and its outcome never fails the build.
*/
package cmake
