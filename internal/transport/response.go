package transport

// Response is the envelope returned by every /api endpoint. Errors is always a
// JSON array and Data is null whenever Errors is not empty.
type Response[T any] struct {
	Data   *T       `json:"data"`
	Errors []string `json:"errors"`
}

func Ok[T any](data T) Response[T] {
	return Response[T]{Data: &data, Errors: []string{}}
}

func Empty() Response[struct{}] {
	return Response[struct{}]{Errors: []string{}}
}

func Fail(messages ...string) Response[struct{}] {
	if messages == nil {
		messages = []string{}
	}
	return Response[struct{}]{Errors: messages}
}
