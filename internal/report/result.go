package report

type Kind string

const (
	KindUserCSV Kind = "export-csv"
	KindMonthly Kind = "generate-monthly"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is what a report job hands back. Failures inside the job are carried
// here with Status "error" and never surface as a Go error.
type Result struct {
	Status  string `json:"status"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func success(content string) Result {
	return Result{Status: StatusSuccess, Content: content}
}

func failure(message string) Result {
	return Result{Status: StatusError, Message: message}
}
