package files

// Upload is a locally attached file: the bytes plus the metadata the
// validator and the multipart encoder need.
type Upload struct {
	Name        string
	ContentType string
	Content     []byte
}

// Meta projects the upload into the validator's input shape.
func (u Upload) Meta() FileMeta {
	head := u.Content
	if len(head) > 512 {
		head = head[:512]
	}
	return FileMeta{
		Name:        u.Name,
		ContentType: u.ContentType,
		Size:        int64(len(u.Content)),
		Head:        head,
	}
}
