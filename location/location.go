// Package location turns symbolic stack identifiers into service base URLs.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/insightapi/suggestions-client-go/internal/util"
)

// Stack identifies a backend service cluster.
type Stack string

const (
	InsightAPI     Stack = "insight:api"
	GlobalAPI      Stack = "global:api"
	IntegrationAPI Stack = "integration:api"
)

var ErrUnknownStack = errors.New("unknown stack")

// Resolver looks up the base URL serving a stack.
type Resolver interface {
	Resolve(stack Stack) (string, error)
}

// Table is a static Resolver. It is safe for concurrent use.
type Table struct {
	entries util.SyncMap[Stack, string]
}

func NewTable(entries map[Stack]string) (*Table, error) {
	t := &Table{entries: util.NewSyncMap[Stack, string]()}
	for stack, baseURL := range entries {
		if err := t.Set(stack, baseURL); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func MustNewTable(entries map[Stack]string) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Set(stack Stack, baseURL string) error {
	if stack == "" {
		return errors.New("stack must not be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parse base URL for stack %q: %w", stack, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base URL for stack %q must be absolute, got %q", stack, baseURL)
	}
	t.entries.Set(stack, strings.TrimRight(baseURL, "/"))
	return nil
}

func (t *Table) Resolve(stack Stack) (string, error) {
	baseURL, ok := t.entries.GetCheck(stack)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownStack, stack)
	}
	return baseURL, nil
}

// Stacks returns the configured stacks in sorted order.
func (t *Table) Stacks() []Stack {
	stacks := t.entries.Keys()
	sort.Slice(stacks, func(i, j int) bool {
		return stacks[i] < stacks[j]
	})
	return stacks
}
