package service

import (
	"context"
	"fmt"

	"floodFriend/internal/geo"
	"floodFriend/models"
	"floodFriend/repository"
)

// RecentAlertsLimit is how many alerts the analysis view lists.
const RecentAlertsLimit = 10

// Analysis is the read-only aggregate over the alert and resource registers.
type Analysis struct {
	AlertsBySeverity []repository.GroupCount `json:"alerts_by_severity"`
	ResourcesByType  []repository.GroupCount `json:"resources_by_type"`
	RecentAlerts     []models.Alert          `json:"recent_alerts"`
}

// Analysis recomputes the aggregate from the current registers.
func (s *Service) Analysis(ctx context.Context) (*Analysis, error) {
	bySeverity, err := s.alerts.CountBySeverity(ctx)
	if err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	byType, err := s.resources.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count resources: %w", err)
	}
	recent, err := s.alerts.Recent(ctx, RecentAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	return &Analysis{
		AlertsBySeverity: nonNil(bySeverity),
		ResourcesByType:  nonNil(byType),
		RecentAlerts:     nonNil(recent),
	}, nil
}

// MapView is everything plotted on the map plus a box covering it.
// Bounds is nil when there is nothing to plot.
type MapView struct {
	Alerts    []models.Alert    `json:"alerts"`
	Resources []models.Resource `json:"resources"`
	Bounds    *geo.Bounds       `json:"bounds,omitempty"`
}

// MapView loads both registers unordered.
func (s *Service) MapView(ctx context.Context) (*MapView, error) {
	v := &MapView{Alerts: []models.Alert{}, Resources: []models.Resource{}}
	for a, err := range s.alerts.All(ctx, repository.Unordered) {
		if err != nil {
			return nil, fmt.Errorf("list alerts: %w", err)
		}
		v.Alerts = append(v.Alerts, a)
		v.Bounds = v.Bounds.Extend(a.Latitude, a.Longitude)
	}
	for r, err := range s.resources.All(ctx, repository.Unordered) {
		if err != nil {
			return nil, fmt.Errorf("list resources: %w", err)
		}
		v.Resources = append(v.Resources, r)
		v.Bounds = v.Bounds.Extend(r.Latitude, r.Longitude)
	}
	return v, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
