package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ericfisherdev/trailtail/internal/application"
	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// stubBackend answers calls whose path starts with a registered prefix and
// reports every other call as a transport error.
type stubBackend struct {
	mu       sync.Mutex
	payloads map[string]any
	calls    []model.RequestDescriptor
}

func (b *stubBackend) Execute(_ context.Context, req model.RequestDescriptor) model.Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, req)

	for prefix, v := range b.payloads {
		if strings.HasPrefix(req.Path, prefix) {
			data, err := json.Marshal(v)
			if err != nil {
				panic(err)
			}
			return model.Success(data)
		}
	}
	return model.Absent(model.AbsentTransportError)
}

func (b *stubBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type memTokenStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *memTokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

func (s *memTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memTokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// testEnv is one wired set of services plus what the opener observed.
type testEnv struct {
	backend  *stubBackend
	session  *application.Session
	services *Services

	notifier     driven.OfflineNotifier
	openedWithUI bool
	served       bool
}

func setupTestServices(t *testing.T, payloads map[string]any) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{backend: &stubBackend{payloads: payloads}}
	env.session = application.NewSession(&memTokenStore{}, logger)
	env.services = &Services{
		Routes:         application.NewRouteService(env.backend, env.session, logger),
		Narratives:     application.NewNarrativeService(env.backend, logger),
		Users:          application.NewUserService(env.backend, env.session, logger),
		Safety:         application.NewSafetyService(env.backend, env.session, logger),
		Encounters:     application.NewEncounterService(env.backend, logger),
		Session:        env.session,
		BackendEnabled: true,
		Serve: func(context.Context) error {
			env.served = true
			return nil
		},
	}

	previous := opener
	opener = func(_ context.Context, n driven.OfflineNotifier) (*Services, error) {
		env.notifier = n
		env.openedWithUI = n != nil
		return env.services, nil
	}
	t.Cleanup(func() { opener = previous })

	return env
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		closeServices()
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so one test's flags do not
// leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
