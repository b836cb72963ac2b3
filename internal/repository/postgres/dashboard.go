package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type dashboardRepository struct {
	BaseRepository
}

func NewDashboardRepository(db *sqlx.DB) repository.DashboardRepository {
	return &dashboardRepository{NewBaseRepository(db)}
}

func (r *dashboardRepository) Stats(ctx context.Context, now time.Time) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{
		GenderDistribution: make(map[string]int),
		UsersByRole:        make(map[model.Role]int),
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM patients`, &stats.GeneralStats.TotalPatients},
		{`SELECT COUNT(*) FROM clinical_records`, &stats.GeneralStats.TotalClinicalRecords},
		{`SELECT COUNT(*) FROM users`, &stats.GeneralStats.TotalUsers},
		{`SELECT COUNT(*) FROM tasks`, &stats.GeneralStats.TotalTasks},
	}
	for _, c := range counts {
		if err := r.db.GetContext(ctx, c.dest, c.query); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	if err := r.db.GetContext(ctx, &stats.TodayStats.NewPatients,
		`SELECT COUNT(*) FROM patients WHERE created_at >= $1 AND created_at < $2`,
		dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("failed to count today's patients: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.TodayStats.NewRecords,
		`SELECT COUNT(*) FROM clinical_records WHERE created_at >= $1 AND created_at < $2`,
		dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("failed to count today's records: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.RecentActivity.RecentPatients, `
		SELECT id, full_name, created_at
		FROM patients
		ORDER BY created_at DESC
		LIMIT 5
	`); err != nil {
		return nil, fmt.Errorf("failed to list recent patients: %w", err)
	}

	if err := r.db.SelectContext(ctx, &stats.RecentActivity.RecentRecords, `
		SELECT r.id, COALESCE(p.full_name, '') AS patient_name,
		       r.practitioner_name, r.visit_date
		FROM clinical_records r
		LEFT JOIN patients p ON p.id = r.patient_id
		ORDER BY r.created_at DESC
		LIMIT 5
	`); err != nil {
		return nil, fmt.Errorf("failed to list recent records: %w", err)
	}

	if err := r.groupCount(ctx, `SELECT gender, COUNT(*) FROM patients GROUP BY gender`,
		func(key string, count int) { stats.GenderDistribution[key] = count }); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`,
		func(key string, count int) { stats.UsersByRole[model.Role(key)] = count }); err != nil {
		return nil, err
	}

	var doneTasks int
	if err := r.db.GetContext(ctx, &doneTasks, `SELECT COUNT(*) FROM tasks WHERE done`); err != nil {
		return nil, fmt.Errorf("failed to count done tasks: %w", err)
	}
	if stats.GeneralStats.TotalTasks > 0 {
		stats.TasksStatus.CompletionRate = float64(doneTasks) / float64(stats.GeneralStats.TotalTasks)
	}

	return stats, nil
}

func (r *dashboardRepository) groupCount(ctx context.Context, query string, collect func(key string, count int)) error {
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to group count: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan group count: %w", err)
		}
		collect(key, count)
	}
	return rows.Err()
}
