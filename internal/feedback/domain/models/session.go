package models

// Identity is the username a request is authenticated as. The zero value is anonymous.
type Identity struct {
	Username string
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(username string) Identity {
	return Identity{Username: username}
}

func (i Identity) IsAnonymous() bool {
	return i.Username == ""
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is what the session store keeps per browser.
type Session struct {
	Username string  `json:"username,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

func (s Session) Identity() Identity {
	return Identity{Username: s.Username}
}
