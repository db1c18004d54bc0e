package desktop

import _ "embed"

// nautilusScriptTemplate is the GNOME Files (Nautilus) script dropped into
// the per-user scripts directory.
//
//go:embed nautilus_script.sh.tmpl
var nautilusScriptTemplate string

// nemoActionTemplate is the Nemo context-menu action descriptor.
//
//go:embed nemo_action.tmpl
var nemoActionTemplate string

// desktopEntryTemplate is the freedesktop.org application launcher.
//
//go:embed desktop_entry.tmpl
var desktopEntryTemplate string
