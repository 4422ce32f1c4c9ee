package directory

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/go-adauth/adauth/ldap"
)

// MockDialer implements the ldap.Dialer interface for testing.
type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) Dial(ctx context.Context) (ldap.Conn, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	conn, ok := args.Get(0).(ldap.Conn)
	if !ok {
		return nil, args.Error(1)
	}
	return conn, args.Error(1)
}

func (m *MockDialer) DialDomain(ctx context.Context, domain string) (ldap.Conn, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	conn, ok := args.Get(0).(ldap.Conn)
	if !ok {
		return nil, args.Error(1)
	}
	return conn, args.Error(1)
}

// MockConn implements the ldap.Conn interface for testing.
type MockConn struct {
	mock.Mock
}

func (m *MockConn) Bind(username, password string) error {
	args := m.Called(username, password)
	return args.Error(0)
}

func (m *MockConn) Search(ctx context.Context, req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	result, ok := args.Get(0).(*ldap.SearchResult)
	if !ok {
		return nil, args.Error(1)
	}
	return result, args.Error(1)
}

func (m *MockConn) Close() error {
	args := m.Called()
	return args.Error(0)
}

// logRecord is a single captured log call.
type logRecord struct {
	level  string
	msg    string
	fields map[string]any
}

// recordingLogger implements ldap.Logger and captures every call. Safe for
// concurrent use.
type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *recordingLogger) record(level, msg string, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, logRecord{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]any) { l.record("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]any)  { l.record("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]any)  { l.record("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]any) { l.record("error", msg, fields) }

// find returns the first record at the given level whose message matches.
func (l *recordingLogger) find(level, msg string) (logRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if r.level == level && r.msg == msg {
			return r, true
		}
	}
	return logRecord{}, false
}
