package domain

// Artifact identifies an uploaded engine package.
type Artifact struct {
	Key  string
	Etag string
}

// Metadata is the completion record written once a build has been published
// and its package persisted.
type Metadata struct {
	Status   string `json:"status"`
	BlobKey  string `json:"blobKey"`
	BlobEtag string `json:"blobEtag"`
}
