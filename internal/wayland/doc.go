// Package wayland binds the render engine to a live compositor session:
// registry and global binding, output hotplug tracking, seat and pointer
// routing, the shared memory double buffer pool, and the bar and window
// session drivers running the single-threaded dispatch loop.
package wayland
