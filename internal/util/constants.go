package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 输入长度上限
const (
	MaxCourseNameLen      = 150
	MaxQuizNameLen        = 200
	MaxCategoryLen        = 100
	MaxQuestionTextLen    = 5000
	MaxOptionTextLen      = 1000
	MaxDescriptionLen     = 1000
	MaxLinkNameLen        = 200
	MaxFileNameLen        = 200
	MaxDiscussionTitleLen = 200
	MaxPostContentLen     = 5000
)

// 构建器占位文本
const (
	EmptyQuestionPlaceholder = "Pertanyaan tidak boleh kosong"
	EmptyOptionPlaceholder   = "Opsi tidak boleh kosong"
)
