package model

// PackageSubmission is the client-owned, ephemeral form state for
// registering a parcel. It exists only while the submission workflow runs:
// it is normalized and validated by the form package, mapped to the wire
// schema by the client, and discarded after a successful submit.
//
// Each workflow instance owns its PackageSubmission exclusively; there is
// no shared mutable submission state between concurrent workflows.
type PackageSubmission struct {
	SenderName    string
	SenderPhone   string
	SenderEmail   string
	SenderAddress string

	RecipientName    string
	RecipientPhone   string
	RecipientEmail   string // optional
	RecipientAddress string

	PackageName string
	PackageType string
	Weight      string // defaults to "0" on the wire when blank
	Value       string // optional, never defaulted
	Description string // optional, never defaulted

	// Photo is an optional opaque binary attachment. The client does not
	// interpret the bytes; the filename is carried for the multipart part.
	Photo         []byte
	PhotoFilename string
}

// HasPhoto returns true when a photo attachment is present.
func (s *PackageSubmission) HasPhoto() bool {
	return len(s.Photo) > 0
}
