package sqlite

import (
	"database/sql"

	apperrs "routinely/internal/errors"
	"routinely/internal/models"
)

// Habit templates are a read-only catalog seeded by migration; there are no
// write paths.

func (s *Store) GetAllTemplates() ([]models.HabitTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, category, block, duration_min, popular
		FROM habit_templates ORDER BY popular DESC, name`)
	if err != nil {
		return nil, apperrs.Persistencef("query templates", err)
	}
	defer rows.Close()

	var templates []models.HabitTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}

func (s *Store) GetTemplate(id string) (models.HabitTemplate, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, category, block, duration_min, popular
		FROM habit_templates WHERE id = ?`, id)

	tmpl, err := scanTemplate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.HabitTemplate{}, apperrs.NotFoundf("habit template %s", id)
		}
		return models.HabitTemplate{}, err
	}
	return tmpl, nil
}

func (s *Store) GetTemplateByName(name string) (models.HabitTemplate, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, category, block, duration_min, popular
		FROM habit_templates WHERE name = ?`, name)

	tmpl, err := scanTemplate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.HabitTemplate{}, apperrs.NotFoundf("habit template %q", name)
		}
		return models.HabitTemplate{}, err
	}
	return tmpl, nil
}

func scanTemplate(row rowScanner) (models.HabitTemplate, error) {
	var t models.HabitTemplate
	var category, block string

	err := row.Scan(&t.ID, &t.Name, &t.Description, &category, &block, &t.DurationMin, &t.Popular)
	if err != nil {
		return models.HabitTemplate{}, err
	}

	t.Category = models.Category(category)
	t.Block = models.TimeBlock(block)
	return t, nil
}
