package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ab1manyu/PokedexChallenge/internal/model"
	"github.com/ab1manyu/PokedexChallenge/internal/service"
)

const (
	requestTimeout = 15 * time.Second

	throwDuration  = 800 * time.Millisecond
	shakeDuration  = 1 * time.Second
	resultDuration = 1500 * time.Millisecond

	// transient error messages revert to the idle prompt after this
	errorRevertDelay = 2 * time.Second
)

const idlePrompt = "PRESS A TO SEARCH"

type starterMsg struct {
	starter model.CaughtEntry
	err     error
}

type catalogIndexMsg struct {
	entries []model.IndexEntry
	err     error
}

type searchResultMsg struct {
	seq   int
	entry model.CatalogEntry
	err   error
}

type revertMessageMsg struct {
	seq int
}

type statusClearMsg struct {
	seq int
}

type animStepMsg struct {
	stage animStage
}

type captureSettledMsg struct{}

type releaseDoneMsg struct {
	starter *model.CaughtEntry
	err     error
}

type resetDoneMsg struct {
	starter model.CaughtEntry
	err     error
}

func assignStarterCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		starter, err := svc.AssignStarter(ctx)
		return starterMsg{starter: starter, err: err}
	}
}

func fetchCatalogIndexCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entries, err := svc.CatalogIndex(ctx)
		return catalogIndexMsg{entries: entries, err: err}
	}
}

func searchCmd(svc *service.Service, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entry, err := svc.Search(ctx, query)
		return searchResultMsg{seq: seq, entry: entry, err: err}
	}
}

func revertMessageCmd(seq int) tea.Cmd {
	return tea.Tick(errorRevertDelay, func(time.Time) tea.Msg {
		return revertMessageMsg{seq: seq}
	})
}

func statusClearCmd(seq int) tea.Cmd {
	return tea.Tick(errorRevertDelay, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func animStepCmd(next animStage, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return animStepMsg{stage: next}
	})
}

func captureSettleCmd() tea.Cmd {
	return tea.Tick(resultDuration, func(time.Time) tea.Msg {
		return captureSettledMsg{}
	})
}

func releaseCmd(svc *service.Service, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		starter, err := svc.Release(ctx, id)
		return releaseDoneMsg{starter: starter, err: err}
	}
}

func resetCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		starter, err := svc.ResetAll(ctx)
		return resetDoneMsg{starter: starter, err: err}
	}
}
