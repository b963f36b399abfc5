package godiopts_test

import (
	"strings"
	"testing"

	"github.com/assurrussa/godiopts"
)

type clientOptions struct {
	Endpoint string
	Retries  int
}

func TestContainerInvokeResolvesOptions(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.ProvideValue(clientOptions{Endpoint: "localhost"}),
		godiopts.Configure(func(o clientOptions) clientOptions {
			o.Retries = 3
			return o
		}),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var got clientOptions
	if err := cnt.Invoke(func(opts *godiopts.Options[clientOptions]) error {
		var err error
		got, err = opts.Value()
		return err
	}); err != nil {
		t.Fatalf("Invoke error: %v", err)
	}

	if got.Endpoint != "localhost" || got.Retries != 3 {
		t.Fatalf("expected configured options, got %+v", got)
	}
}

func TestContainerInvokeResolvesFactory(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.ProvideValue(clientOptions{Endpoint: "primary"}, godiopts.WithName("primary")),
		godiopts.ProvideValue(clientOptions{Endpoint: "backup"}, godiopts.WithName("backup")),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var primary, backup clientOptions
	if err := cnt.Invoke(func(f *godiopts.Factory[clientOptions]) error {
		var err error
		if primary, err = f.Resolve("primary"); err != nil {
			return err
		}
		backup, err = f.Resolve("backup")
		return err
	}); err != nil {
		t.Fatalf("Invoke error: %v", err)
	}

	if primary.Endpoint != "primary" || backup.Endpoint != "backup" {
		t.Fatalf("expected named instances, got %+v and %+v", primary, backup)
	}
}

func TestContainerRegisterAfterInvokeFails(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.ProvideValue(clientOptions{}),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := cnt.Invoke(func(*godiopts.Options[clientOptions]) {}); err != nil {
		t.Fatalf("Invoke error: %v", err)
	}

	if err := cnt.Register(godiopts.Configure(func(o clientOptions) clientOptions { return o })); err == nil {
		t.Fatal("expected error when registering after invoke, got nil")
	}
}

func TestContainerRegisterRejectsBrokenRegistration(t *testing.T) {
	t.Parallel()

	_, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.Configure[clientOptions](nil),
	))
	if err == nil {
		t.Fatal("expected error for nil configure function, got nil")
	}
}

func TestContainerRegisterIsTransactionalOnBrokenBatch(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	err = cnt.Register(
		godiopts.ProvideValue(clientOptions{Endpoint: "keep"}),
		godiopts.Validate[clientOptions](nil),
	)
	if err == nil {
		t.Fatal("expected register error, got nil")
	}

	// The batch must not have left partial state behind.
	if _, err := godiopts.Resolve[clientOptions](cnt, godiopts.DefaultName); err == nil {
		t.Fatal("expected no registrations for clientOptions after failed batch")
	}
}

func TestContainerValidateDryRun(t *testing.T) {
	t.Parallel()

	created := false
	cnt, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.Provide(func() (clientOptions, error) {
			created = true
			return clientOptions{}, nil
		}),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if err := cnt.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if created {
		t.Fatal("expected dry run not to execute creators")
	}
}

func TestContainerResolveUnregisteredType(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := godiopts.Resolve[clientOptions](cnt, godiopts.DefaultName); err == nil {
		t.Fatal("expected error for unregistered options type, got nil")
	}
}

func TestContainerModuleNameRequired(t *testing.T) {
	t.Parallel()

	_, err := godiopts.New(godiopts.WithModules(godiopts.Module{
		Registrations: []godiopts.Registration{godiopts.ProvideValue(clientOptions{})},
	}))
	if err == nil || !strings.Contains(err.Error(), "module name is required") {
		t.Fatalf("expected module name error, got %v", err)
	}
}

func TestContainerModulesContributeRegistrations(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New(godiopts.WithModules(
		godiopts.NewModule("transport",
			godiopts.ProvideValue(clientOptions{Endpoint: "module"}),
		),
		godiopts.NewModule("resilience",
			godiopts.Configure(func(o clientOptions) clientOptions {
				o.Retries = 7
				return o
			}),
		),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	got, err := godiopts.Resolve[clientOptions](cnt, godiopts.DefaultName)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.Endpoint != "module" || got.Retries != 7 {
		t.Fatalf("expected module registrations to apply, got %+v", got)
	}
}

func TestContainerIndependentOptionTypes(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.ProvideValue(clientOptions{Endpoint: "client"}),
		godiopts.ProvideValue(serverOptions{Value: "server"}),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	client, err := godiopts.Resolve[clientOptions](cnt, godiopts.DefaultName)
	if err != nil {
		t.Fatalf("Resolve client error: %v", err)
	}
	server, err := godiopts.Resolve[serverOptions](cnt, godiopts.DefaultName)
	if err != nil {
		t.Fatalf("Resolve server error: %v", err)
	}

	if client.Endpoint != "client" || server.Value != "server" {
		t.Fatalf("expected independent pipelines, got %+v and %+v", client, server)
	}
}

func TestContainerReport(t *testing.T) {
	t.Parallel()

	cnt, err := godiopts.New(godiopts.WithRegistrations(
		godiopts.ProvideValue(clientOptions{}),
		godiopts.ProvideValue(clientOptions{}, godiopts.WithName("backup")),
		godiopts.ConfigureAll(func(_ string, o clientOptions) clientOptions { return o }),
		godiopts.ValidateAll(func(clientOptions) []string { return nil }),
		godiopts.ValidateOnStart[clientOptions]("backup"),
	))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	reports := cnt.Report()
	if len(reports) != 1 {
		t.Fatalf("expected one report, got %d", len(reports))
	}

	r := reports[0]
	if r.Creators != 2 || r.Configurers != 1 || r.Validators != 1 {
		t.Fatalf("unexpected report counts: %+v", r)
	}
	if len(r.CreatorNames) != 2 {
		t.Fatalf("expected two creator names, got %v", r.CreatorNames)
	}
	if len(r.StartChecks) != 1 || r.StartChecks[0] != "backup" {
		t.Fatalf("expected start check for backup, got %v", r.StartChecks)
	}
}
