package dealing

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"net/url"
	"sync"
	"time"
)

type sessionRequest struct {
	path       string
	params     url.Values
	apiVersion int
}

type fakeSession struct {
	requests []sessionRequest
	handler  func(request sessionRequest) (model.Raw, error)
}

func (fs *fakeSession) Get(
	ctx context.Context,
	path string,
	params url.Values,
	apiVersion int,
) (model.Raw, error) {
	request := sessionRequest{path, params, apiVersion}
	fs.requests = append(fs.requests, request)
	return fs.handler(request)
}

func (fs *fakeSession) Post(
	ctx context.Context,
	path string,
	body model.Raw,
	apiVersion int,
) (model.Raw, error) {
	return nil, fmt.Errorf("unexpected post request to [%v]", path)
}

type recordingLogger struct {
	mutex    sync.Mutex
	warnings []string
}

func (rl *recordingLogger) Debugf(format string, args ...interface{}) {}

func (rl *recordingLogger) Infof(format string, args ...interface{}) {}

func (rl *recordingLogger) Warningf(format string, args ...interface{}) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.warnings = append(rl.warnings, fmt.Sprintf(format, args...))
}

func (rl *recordingLogger) Errorf(format string, args ...interface{}) {}

func (rl *recordingLogger) Fatalf(format string, args ...interface{}) {}

func (rl *recordingLogger) WithField(key string, value interface{}) Logger {
	return rl
}

func (rl *recordingLogger) WithFields(fields map[string]interface{}) Logger {
	return rl
}

func newTestClient(
	handler func(request sessionRequest) (model.Raw, error),
) (*Client, *fakeSession, *recordingLogger) {
	session := &fakeSession{handler: handler}
	logger := &recordingLogger{}

	client := NewClient(logger, session)
	client.registry = NewErrorRegistry(logger)

	return client, session, logger
}

var historyBase = time.Date(2021, time.June, 11, 15, 0, 0, 0, time.UTC)

func activityRaw(index int) model.Raw {
	return model.Raw{
		"channel":     "WEB",
		"date":        historyBase.Add(-time.Duration(index) * time.Minute).Format(model.LayoutDateTime),
		"dealId":      fmt.Sprintf("DEAL%v", index),
		"description": "Position opened",
		"epic":        "CS.D.EURUSD.CFD.IP",
		"period":      "-",
		"status":      "ACCEPTED",
		"type":        "POSITION",
	}
}

func activityRaws(from, to int) []interface{} {
	raws := make([]interface{}, 0, to-from)
	for i := from; i < to; i++ {
		raws = append(raws, activityRaw(i))
	}

	return raws
}
