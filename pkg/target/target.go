// Package target defines the static registry of manageable workstation
// components. Targets are declared once at startup and never mutated; the
// declaration order is the execution order.
package target

// Category selects the install strategy for a target.
type Category string

const (
	// CategoryApt installs one or more system packages.
	CategoryApt Category = "apt"
	// CategoryGit clones or fast-forwards a git repository.
	CategoryGit Category = "git"
	// CategoryDownload fetches asset files to a destination directory.
	CategoryDownload Category = "download"
	// CategoryExternal delegates to a named third-party install procedure.
	CategoryExternal Category = "external"
)

// Probe describes how presence of a target is detected. Exactly one field is
// normally set; the first non-empty probe in field order decides.
type Probe struct {
	// Command is a binary name looked up on PATH.
	Command string
	// Dir is a directory whose existence indicates the target is present.
	Dir string
	// File is a file whose existence indicates the target is present.
	File string
	// Check is a command whose zero exit status indicates the target is
	// present; it must be side-effect free.
	Check []string
}

// PatchMode selects the configuration-file patching strategy.
type PatchMode string

const (
	// AppendOnce appends the block unless the marker is already present.
	AppendOnce PatchMode = "append-once"
	// ReplaceLine rewrites the first line with the given key prefix in
	// place, appending the line when no such line exists.
	ReplaceLine PatchMode = "replace-line"
)

// Patch is one idempotent edit to a shell startup file.
type Patch struct {
	File   string
	Mode   PatchMode
	Marker string // append-once: substring that proves the block exists
	Key    string // replace-line: line prefix, e.g. `ZSH_THEME=`
	Text   string // block or replacement line
}

// GitSpec is the payload for CategoryGit targets.
type GitSpec struct {
	URL  string
	Dest string
}

// Target is a single manageable unit: how to detect it, how to install it,
// and which configuration edits follow a successful install.
type Target struct {
	ID       string
	Label    string
	Category Category
	Probe    Probe

	Packages  []string // CategoryApt
	Git       GitSpec  // CategoryGit
	Installer string   // CategoryExternal: key into the installer table
	Assets    []string // CategoryDownload: asset file names

	// FileManager marks targets whose install is followed by writing the
	// per-user file-manager integration descriptor files.
	FileManager bool

	Patches []Patch
}
