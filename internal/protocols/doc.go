// Package protocols provides client-side glue for the Wayland protocol
// extensions waynag needs beyond the core protocol: zwlr_layer_shell_v1 for
// the anchored bar and xdg_shell for the floating window. The glue follows
// the generated-binding conventions of the underlying client library: one
// proxy type per protocol object, requests as methods, events decoded in
// Dispatch and delivered to a registered listener.
package protocols
