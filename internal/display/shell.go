package display

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.Navigator = (*Shell)(nil)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrNoHistory    = errors.New("nothing to go back to")
)

// Location is one entry on the navigation stack.
type Location struct {
	Route domain.Route
	Param string
}

// Screen runs one screen until it navigates away or the user quits. It
// returns after calling Navigate, or without navigating to end the run.
type Screen func(ctx context.Context, param string) error

// Shell is a stack navigator. Detail and Add-Recipe push; Back pops;
// Home pops to an existing Home entry or pushes one.
type Shell struct {
	mu      sync.Mutex
	stack   []Location
	moves   int
	screens map[domain.Route]Screen
	log     *logger.Logger
}

// NewShell creates a navigator whose stack starts at initial.
func NewShell(initial domain.Route, log *logger.Logger) *Shell {
	return &Shell{
		stack:   []Location{{Route: initial}},
		screens: make(map[domain.Route]Screen),
		log:     log,
	}
}

// Handle registers the screen shown for route.
func (s *Shell) Handle(route domain.Route, screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screens[route] = screen
}

// Navigate implements domain.Navigator.
func (s *Shell) Navigate(ctx context.Context, route domain.Route, param string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch route {
	case domain.RouteBack:
		if len(s.stack) == 0 {
			return ErrNoHistory
		}
		s.stack = s.stack[:len(s.stack)-1]
	case domain.RouteHome:
		s.stack = popTo(s.stack, domain.RouteHome)
	case domain.RouteRecipeDetail, domain.RouteAddRecipe:
		s.stack = append(s.stack, Location{Route: route, Param: param})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}
	s.moves++
	s.log.Debug("navigate %s %q (depth %d)", route, param, len(s.stack))
	return nil
}

// popTo drops entries above the last occurrence of route, or pushes route
// when it is not on the stack.
func popTo(stack []Location, route domain.Route) []Location {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Route == route {
			return stack[:i+1]
		}
	}
	return append(stack, Location{Route: route})
}

// Current returns the top of the stack.
func (s *Shell) Current() (Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return Location{}, false
	}
	return s.stack[len(s.stack)-1], true
}

// depth returns the stack size.
func (s *Shell) depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}

// Run shows the current screen in a loop. It returns when the stack is
// empty, the current route has no screen, a screen returns without
// navigating, or a screen fails.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		loc, ok := s.Current()
		if !ok {
			return nil
		}

		s.mu.Lock()
		screen, ok := s.screens[loc.Route]
		before := s.moves
		s.mu.Unlock()
		if !ok {
			s.log.Debug("no screen for %s, leaving", loc.Route)
			return nil
		}
		s.log.Debug("showing %s (depth %d)", loc.Route, s.depth())

		if err := screen(ctx, loc.Param); err != nil {
			return fmt.Errorf("%s screen: %w", loc.Route, err)
		}

		s.mu.Lock()
		moved := s.moves != before
		s.mu.Unlock()
		if !moved {
			return nil
		}
	}
}
