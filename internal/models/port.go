package models

// PortManifest holds the metadata read from a port's CONTROL file
type PortManifest struct {
	// Name comes from the Source field (source CONTROL) or the
	// Package field (binary CONTROL)
	Name string

	// Description is optional and kept verbatim; it is escaped when the
	// record is assembled
	Description string
}

// PackageEntry is one CMake consumption name exposed by a port together
// with the link targets declared for it
type PackageEntry struct {
	// Name is the display name: the config-file root when a config file
	// binds the name, otherwise the directory-derived name
	Name string

	// Targets is sorted lexicographically before serialization
	Targets []string
}

// PortRecord is the assembled analysis result for one port archive.
// Entries are ordered by their map key; Usage is shared by every entry.
type PortRecord struct {
	PortName        string
	PortDescription string
	Usage           string
	Packages        []PackageEntry
}
