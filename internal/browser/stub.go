package browser

// StubRequest is a fixed Request for tests and replays
type StubRequest struct {
	RawURL     string
	HTTPMethod string
	Header     map[string]string
	Body       string
	BodyErr    error
	Resource   string
}

func (r *StubRequest) URL() string                { return r.RawURL }
func (r *StubRequest) Method() string             { return r.HTTPMethod }
func (r *StubRequest) Headers() map[string]string { return r.Header }
func (r *StubRequest) PostData() (string, error)  { return r.Body, r.BodyErr }
func (r *StubRequest) ResourceType() string       { return r.Resource }

// StubResponse is a fixed Response for tests and replays.
// When TextFunc is set it is used instead of Body/BodyErr.
type StubResponse struct {
	Origin   *StubRequest
	RawURL   string
	Code     int
	Reason   string
	Header   map[string]string
	Body     string
	BodyErr  error
	TextFunc func() (string, error)
}

func (r *StubResponse) URL() string {
	if r.RawURL == "" && r.Origin != nil {
		return r.Origin.RawURL
	}
	return r.RawURL
}

func (r *StubResponse) Status() int                { return r.Code }
func (r *StubResponse) StatusText() string         { return r.Reason }
func (r *StubResponse) Headers() map[string]string { return r.Header }
func (r *StubResponse) Request() Request           { return r.Origin }

func (r *StubResponse) Text() (string, error) {
	if r.TextFunc != nil {
		return r.TextFunc()
	}
	return r.Body, r.BodyErr
}
