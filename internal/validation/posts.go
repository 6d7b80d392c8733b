package validation

// PostData is the body of a post or a comment.
type PostData struct {
	Text string `json:"text" validate:"notblank,min=10,max=300"`
}

var postMessages = map[string]string{
	"text.notblank": "Text field is required",
	"text":          "Post must be between 10 and 300 characters",
}

// ValidatePost checks a post or comment body.
func ValidatePost(d PostData) Result {
	return check(d, postMessages)
}
