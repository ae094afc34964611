package util

const (
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeJSON = "application/json"
	MimeText = "text/plain"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	MessagePassed = "Quiz completed successfully. You passed!"
	MessageFailed = "Quiz completed. Keep practicing!"
)
