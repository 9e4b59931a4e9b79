package main

import (
	"context"
	"fmt"
	"strings"

	"weatherview.app/internal/models"
	"weatherview.app/pkg/errors"
	"weatherview.app/pkg/validation"
)

// settler is a view that reports when its loads have finished
type settler interface {
	Settled() bool
	Err() error
	Reset()
}

// drive posts action to the event loop and processes callbacks until view settles
func (s *cliState) drive(ctx context.Context, view settler, action func()) error {
	view.Reset()
	loop := s.app.EventLoop()
	loop.Post(action)
	loop.RunUntil(ctx, view.Settled)

	if err := ctx.Err(); err != nil {
		return err
	}
	return view.Err()
}

// post runs action on the event loop and waits for it
func (s *cliState) post(ctx context.Context, action func()) {
	done := false
	loop := s.app.EventLoop()
	loop.Post(func() {
		action()
		done = true
	})
	loop.RunUntil(ctx, func() bool { return done })
}

// findStation searches every state's station list for id
func (s *cliState) findStation(ctx context.Context, id string) (models.Station, error) {
	id, err := stationID(id)
	if err != nil {
		return models.Station{}, err
	}
	repo := s.app.Repository()

	var (
		found   models.Station
		ok      bool
		done    bool
		pending int
		lookErr error
	)
	onStations := func(stations []models.Station, err error) {
		pending--
		if err != nil && lookErr == nil {
			lookErr = err
		}
		for _, station := range stations {
			if station.ID == id && !ok {
				found, ok = station, true
			}
		}
		done = pending == 0
	}

	loop := s.app.EventLoop()
	loop.Post(func() {
		repo.GetStates(s.force, func(states []models.State, err error) {
			if err != nil {
				lookErr, done = err, true
				return
			}
			pending = len(states)
			done = pending == 0
			for _, state := range states {
				repo.GetStations(state.Code, s.force, onStations)
			}
		})
	})
	loop.RunUntil(ctx, func() bool { return done })

	switch {
	case ctx.Err() != nil:
		return models.Station{}, ctx.Err()
	case ok:
		return found, nil
	case lookErr != nil:
		return models.Station{}, fmt.Errorf("look up station %s: %w", id, lookErr)
	default:
		return models.Station{}, errors.NewNotFoundError(fmt.Sprintf("station %s not found", id))
	}
}

func stationID(arg string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(arg))
	if !validation.IsValidStationID(id) {
		return "", errors.NewValidationError(fmt.Sprintf("%q is not a station id like IDV60801.94866", arg))
	}
	return id, nil
}

func stateCode(arg string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(arg))
	if !validation.IsValidStateCode(code) {
		return "", errors.NewValidationError(fmt.Sprintf("%q is not a state code like VIC", arg))
	}
	return code, nil
}
