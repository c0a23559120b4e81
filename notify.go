package podsettings

import "log"

// ImportRequest is a request to have an externally hosted podcast imported.
type ImportRequest struct {
	Name    string
	Website string
	Email   string
	FeedURL string
}

// Notifier delivers import requests to whoever handles them (a support
// mailbox, a ticket queue). Delivery is the collaborator's concern; the
// settings surface only posts through this port.
type Notifier interface {
	NotifyImport(req ImportRequest) error
}

// LogNotifier writes import requests to the process log. It is the default
// when no Notifier is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyImport(req ImportRequest) error {
	log.Printf("podsettings: import request from %s <%s> (%s): %s", req.Name, req.Email, req.Website, req.FeedURL)
	return nil
}
