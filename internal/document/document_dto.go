package document

type AttachDocumentRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,gt=0,lte=10485760"`
	StorageKey  string `json:"storage_key" binding:"required,max=512"`
}

type DocumentResponse struct {
	ID          string `json:"id"`
	LeaveID     string `json:"leave_id"`
	UploaderID  string `json:"uploader_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
	CreatedAt   string `json:"created_at"`
}
