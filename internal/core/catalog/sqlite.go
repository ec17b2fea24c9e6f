package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lazyfood/internal/pkg/common"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	prep_time_minutes INTEGER,
	calories INTEGER,
	difficulty INTEGER NOT NULL,
	emoji TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS recipe_steps (
	recipe_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	number INTEGER,
	instruction TEXT NOT NULL,
	timer_seconds INTEGER,
	PRIMARY KEY (recipe_id, position)
);
CREATE TABLE IF NOT EXISTS suggestions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	recipe_id INTEGER NOT NULL,
	recipe_name TEXT NOT NULL,
	match_percent REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_suggestions_user ON suggestions (user_id, id);
CREATE TABLE IF NOT EXISTS plan_entries (
	user_id TEXT NOT NULL,
	week TEXT NOT NULL,
	date TEXT NOT NULL,
	slot TEXT NOT NULL,
	recipe_id INTEGER,
	PRIMARY KEY (user_id, week, date, slot)
);
`

// SQLiteStore persists the catalog in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the catalog database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	// The driver serializes access itself but a single connection avoids
	// SQLITE_BUSY under write contention.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureRecipe(ctx context.Context, recipe common.RecipeMetadata) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM recipes WHERE name = ?`, recipe.Name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup recipe: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO recipes (name, prep_time_minutes, calories, difficulty, emoji) VALUES (?, ?, ?, ?, ?)`,
		recipe.Name, nullableInt(recipe.PrepTimeMinutes), nullableInt(recipe.Calories), recipe.Difficulty, recipe.Emoji)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipe id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) RecipeByID(ctx context.Context, id int64) (*common.CatalogRecipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, prep_time_minutes, calories, difficulty, emoji FROM recipes WHERE id = ?`, id)
	return scanRecipe(row)
}

func (s *SQLiteStore) FindRecipeByName(ctx context.Context, name string) (*common.CatalogRecipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, prep_time_minutes, calories, difficulty, emoji FROM recipes WHERE name = ?`, name)
	return scanRecipe(row)
}

func scanRecipe(row *sql.Row) (*common.CatalogRecipe, error) {
	var (
		recipe   common.CatalogRecipe
		prep, ca sql.NullInt64
	)
	err := row.Scan(&recipe.ID, &recipe.Name, &prep, &ca, &recipe.Difficulty, &recipe.Emoji)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	recipe.PrepTimeMinutes = intFromNull(prep)
	recipe.Calories = intFromNull(ca)
	return &recipe, nil
}

func (s *SQLiteStore) Recipes(ctx context.Context) ([]common.CatalogRecipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, prep_time_minutes, calories, difficulty, emoji FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recipes []common.CatalogRecipe
	for rows.Next() {
		var (
			recipe   common.CatalogRecipe
			prep, ca sql.NullInt64
		)
		if err := rows.Scan(&recipe.ID, &recipe.Name, &prep, &ca, &recipe.Difficulty, &recipe.Emoji); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipe.PrepTimeMinutes = intFromNull(prep)
		recipe.Calories = intFromNull(ca)
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

func (s *SQLiteStore) ReplaceSteps(ctx context.Context, recipeID int64, steps []common.RecipeStep) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_steps WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("clear steps: %w", err)
	}
	for i, step := range steps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_steps (recipe_id, position, number, instruction, timer_seconds) VALUES (?, ?, ?, ?, ?)`,
			recipeID, i, nullableInt(step.Number), step.Instruction, nullableInt(step.TimerSeconds)); err != nil {
			return fmt.Errorf("insert step: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Steps(ctx context.Context, recipeID int64) ([]common.RecipeStep, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number, instruction, timer_seconds FROM recipe_steps WHERE recipe_id = ? ORDER BY position`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("select steps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	steps := []common.RecipeStep{}
	for rows.Next() {
		var (
			step          common.RecipeStep
			number, timer sql.NullInt64
		)
		if err := rows.Scan(&number, &step.Instruction, &timer); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step.Number = intFromNull(number)
		step.TimerSeconds = intFromNull(timer)
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (s *SQLiteStore) SaveSuggestion(ctx context.Context, userID string, suggestion common.Suggestion) error {
	if suggestion.CreatedAt == "" {
		suggestion.CreatedAt = time.Now().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO suggestions (user_id, recipe_id, recipe_name, match_percent, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, suggestion.RecipeID, suggestion.RecipeName, suggestion.MatchPercent, suggestion.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentSuggestions(ctx context.Context, userID string, limit int) ([]common.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, recipe_name, match_percent, created_at FROM suggestions WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select suggestions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var suggestions []common.Suggestion
	for rows.Next() {
		var suggestion common.Suggestion
		if err := rows.Scan(&suggestion.RecipeID, &suggestion.RecipeName, &suggestion.MatchPercent, &suggestion.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, rows.Err()
}

func (s *SQLiteStore) ReplacePlanWeek(ctx context.Context, userID string, plan common.WeeklyPlan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM plan_entries WHERE user_id = ? AND week = ?`, userID, plan.Week); err != nil {
		return fmt.Errorf("clear plan week: %w", err)
	}

	for date, meals := range plan.Days {
		slots := map[string]*int64{
			"desayuno": meals.Breakfast,
			"almuerzo": meals.Lunch,
			"cena":     meals.Dinner,
		}
		for slot, recipeID := range slots {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO plan_entries (user_id, week, date, slot, recipe_id) VALUES (?, ?, ?, ?, ?)`,
				userID, plan.Week, date, slot, nullableInt64(recipeID)); err != nil {
				return fmt.Errorf("insert plan entry: %w", err)
			}
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) PlanWeek(ctx context.Context, userID string, week string) (*common.WeeklyPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, slot, recipe_id FROM plan_entries WHERE user_id = ? AND week = ?`, userID, week)
	if err != nil {
		return nil, fmt.Errorf("select plan week: %w", err)
	}
	defer func() { _ = rows.Close() }()

	days := make(map[string]common.DayMeals)
	for rows.Next() {
		var (
			date, slot string
			recipeID   sql.NullInt64
		)
		if err := rows.Scan(&date, &slot, &recipeID); err != nil {
			return nil, fmt.Errorf("scan plan entry: %w", err)
		}

		meals := days[date]
		var id *int64
		if recipeID.Valid {
			v := recipeID.Int64
			id = &v
		}
		switch slot {
		case "desayuno":
			meals.Breakfast = id
		case "almuerzo":
			meals.Lunch = id
		case "cena":
			meals.Dinner = id
		}
		days[date] = meals
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}
	return &common.WeeklyPlan{Week: week, Days: days}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
