// Package nav implements the route guard that keeps the UI shell's location
// consistent with the session state.
//
// The policy is a pure function (DecideRedirect); the Guard wires it to the
// session store's change stream and the shell's location reports, and pushes
// Redirect events to a sink. Guard-issued navigations always replace the
// current entry and clear history, so a logged-out user cannot back-navigate
// into protected surfaces.
package nav
