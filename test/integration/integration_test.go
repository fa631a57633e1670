//go:build integration

// Package integration runs the Gherkin features under features/ against an
// in-process API backed by SQLite and miniredis.
package integration

import (
	"flag"
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/finance-tracker/recurring/test/integration/steps"
)

// Scenarios share one database, so they run sequentially and in file order.
var opts = godog.Options{
	Format:      "pretty",
	Paths:       []string{"features"},
	Output:      colors.Colored(os.Stdout),
	Concurrency: 1,
	Strict:      true,
}

func init() {
	godog.BindCommandLineFlags("godog.", &opts)
}

func TestMain(m *testing.M) {
	flag.Parse()
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}
	os.Exit(m.Run())
}

func TestFeatures(t *testing.T) {
	o := opts
	o.TestingT = t

	status := godog.TestSuite{
		Name:                 "recurring-transactions-api",
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options:              &o,
	}.Run()

	if status != 0 {
		t.Fatalf("feature suite failed with status %d", status)
	}
}
