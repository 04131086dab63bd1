package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nilsimda/topturnier/ingest"
	"github.com/nilsimda/topturnier/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initDatabase(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initDatabase() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS competitions (
			id TEXT PRIMARY KEY,
			dir TEXT UNIQUE,
			title TEXT,
			judges_consistent INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			competition_id TEXT,
			dialect TEXT,
			path TEXT,
			round_trip_ok INTEGER,
			diff TEXT,
			diagnostics INTEGER,
			PRIMARY KEY (competition_id, dialect),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS judges (
			competition_id TEXT,
			position INTEGER,
			code TEXT,
			name TEXT,
			last_name TEXT,
			club TEXT,
			PRIMARY KEY (competition_id, position),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS committee_members (
			competition_id TEXT,
			position INTEGER,
			role TEXT,
			name TEXT,
			club TEXT,
			PRIMARY KEY (competition_id, position),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			competition_id TEXT,
			number INTEGER,
			name_one TEXT,
			name_two TEXT,
			club TEXT,
			ranks TEXT,
			PRIMARY KEY (competition_id, number),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS placings (
			competition_id TEXT,
			round_index INTEGER,
			round_name TEXT,
			position INTEGER,
			rank TEXT,
			number INTEGER,
			final INTEGER,
			total_score REAL,
			PRIMARY KEY (competition_id, round_index, position),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS dance_scores (
			competition_id TEXT,
			round_index INTEGER,
			number INTEGER,
			dance TEXT,
			marks TEXT,
			place REAL,
			PRIMARY KEY (competition_id, round_index, number, dance),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			competition_id TEXT,
			number INTEGER,
			judge_code TEXT,
			dance TEXT,
			round_number INTEGER,
			round_name TEXT,
			voted INTEGER,
			mark INTEGER,
			PRIMARY KEY (competition_id, number, judge_code, dance, round_number),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS final_scorings (
			competition_id TEXT,
			number INTEGER,
			placement TEXT,
			names TEXT,
			club TEXT,
			total TEXT,
			PRIMARY KEY (competition_id, number),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE TABLE IF NOT EXISTS dance_summaries (
			competition_id TEXT,
			number INTEGER,
			dance TEXT,
			summary TEXT,
			PRIMARY KEY (competition_id, number, dance),
			FOREIGN KEY (competition_id) REFERENCES competitions (id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_competitions_title ON competitions (title)`,
		`CREATE INDEX IF NOT EXISTS idx_judges_name ON judges (last_name, name)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_names ON participants (name_one, name_two)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_judge ON scores (competition_id, judge_code)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// competitionTables are cleared before a directory is stored again.
var competitionTables = []string{
	"pages", "judges", "committee_members", "participants", "placings",
	"dance_scores", "scores", "final_scorings", "dance_summaries",
}

// SaveCompetition stores c in one transaction. A competition ingested earlier
// from the same directory is replaced.
func (s *Store) SaveCompetition(ctx context.Context, c ingest.Competition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previous string
	err = tx.QueryRowContext(ctx, "SELECT id FROM competitions WHERE dir = ?", c.Dir).Scan(&previous)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return fmt.Errorf("failed to look up competition: %w", err)
	default:
		if err := deleteCompetition(ctx, tx, previous); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO competitions (id, dir, title, judges_consistent, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		c.ID, c.Dir, c.Title, c.JudgeReport.Consistent()); err != nil {
		return fmt.Errorf("failed to insert competition: %w", err)
	}

	for _, p := range c.Pages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (competition_id, dialect, path, round_trip_ok, diff, diagnostics)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, p.Dialect.String(), p.Path, p.Equal, p.Diff, len(p.Diagnostics)); err != nil {
			return fmt.Errorf("failed to insert page %s: %w", p.Path, err)
		}
	}

	// Judge operations
	for i, j := range c.Judges {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO judges (competition_id, position, code, name, last_name, club)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, i, j.Code, j.Name, j.LastName, j.Club); err != nil {
			return fmt.Errorf("failed to insert judge %s: %w", j.Code, err)
		}
	}
	for i, m := range c.Committee {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO committee_members (competition_id, position, role, name, club)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, i, string(m.Role), m.Name, m.Club); err != nil {
			return fmt.Errorf("failed to insert committee member %s: %w", m.Name, err)
		}
	}

	// Participant operations
	for _, p := range c.Participants {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO participants (competition_id, number, name_one, name_two, club, ranks)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, p.Number, p.NameOne, p.NameTwo, p.Club, joinInts(p.Ranks)); err != nil {
			return fmt.Errorf("failed to insert participant %d: %w", p.Number, err)
		}
	}

	// Result operations
	for ri, round := range c.Rounds {
		for pi, placing := range round.Placings {
			final, isFinal := placing.(models.FinalRoundPlacing)
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO placings (competition_id, round_index, round_name, position, rank, number, final, total_score)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, ri, round.Name, pi, placing.PlacingRank(), placing.PlacingParticipant().Number,
				isFinal, final.TotalScore); err != nil {
				return fmt.Errorf("failed to insert placing: %w", err)
			}
			for _, ds := range final.DanceScores {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO dance_scores (competition_id, round_index, number, dance, marks, place)
					VALUES (?, ?, ?, ?, ?, ?)`,
					c.ID, ri, final.Participant.Number, ds.Dance.Abbreviation(), joinInts(ds.Marks), ds.Place); err != nil {
					return fmt.Errorf("failed to insert dance score: %w", err)
				}
			}
		}
	}

	// Score operations
	for _, sc := range c.Scores {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO scores (competition_id, number, judge_code, dance, round_number, round_name, voted)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, sc.Number, sc.JudgeCode, sc.Dance.Abbreviation(), sc.RoundNumber, sc.RoundName, sc.Voted); err != nil {
			return fmt.Errorf("failed to insert score: %w", err)
		}
	}
	for _, sc := range c.FinalScores {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO scores (competition_id, number, judge_code, dance, round_number, round_name, mark)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, sc.Number, sc.JudgeCode, sc.Dance.Abbreviation(), sc.RoundNumber, sc.RoundName, sc.Mark); err != nil {
			return fmt.Errorf("failed to insert final score: %w", err)
		}
	}
	for _, fs := range c.FinalScorings {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO final_scorings (competition_id, number, placement, names, club, total)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, fs.Number, fs.Placement, fs.Names, fs.Club, fs.Total); err != nil {
			return fmt.Errorf("failed to insert final scoring %d: %w", fs.Number, err)
		}
		for _, ds := range fs.DanceScores {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO dance_summaries (competition_id, number, dance, summary)
				VALUES (?, ?, ?, ?)`,
				c.ID, fs.Number, ds.Dance.Abbreviation(), ds.Summary); err != nil {
				return fmt.Errorf("failed to insert dance summary: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit competition: %w", err)
	}
	return nil
}

func deleteCompetition(ctx context.Context, tx *sql.Tx, id string) error {
	for _, table := range competitionTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE competition_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM competitions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	return nil
}

// CompetitionRecord is one row of the competitions table.
type CompetitionRecord struct {
	ID               string
	Dir              string
	Title            string
	JudgesConsistent bool
}

// Read operations
func (s *Store) GetCompetitions(ctx context.Context) ([]CompetitionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dir, title, judges_consistent
		FROM competitions
		ORDER BY title, dir`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var competitions []CompetitionRecord
	for rows.Next() {
		var c CompetitionRecord
		if err := rows.Scan(&c.ID, &c.Dir, &c.Title, &c.JudgesConsistent); err != nil {
			return nil, err
		}
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}

func (s *Store) GetJudges(ctx context.Context, competitionID string) ([]models.Judge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, last_name, club
		FROM judges
		WHERE competition_id = ?
		ORDER BY position`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var judges []models.Judge
	for rows.Next() {
		var j models.Judge
		if err := rows.Scan(&j.Code, &j.Name, &j.LastName, &j.Club); err != nil {
			return nil, err
		}
		judges = append(judges, j)
	}
	return judges, rows.Err()
}

func (s *Store) GetParticipants(ctx context.Context, competitionID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, name_one, name_two, club, ranks
		FROM participants
		WHERE competition_id = ?
		ORDER BY number`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		var ranks sql.NullString
		if err := rows.Scan(&p.Number, &p.NameOne, &p.NameTwo, &p.Club, &ranks); err != nil {
			return nil, err
		}
		p.Ranks = splitInts(ranks.String)
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// GetScores returns the preliminary crosses and final marks of a competition.
func (s *Store) GetScores(ctx context.Context, competitionID string) ([]models.Score, []models.FinalRoundScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, judge_code, dance, round_number, round_name, voted, mark
		FROM scores
		WHERE competition_id = ?
		ORDER BY round_number, number, dance, judge_code`, competitionID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var scores []models.Score
	var finals []models.FinalRoundScore
	for rows.Next() {
		var number, roundNumber int
		var judgeCode, danceText, roundName string
		var voted sql.NullBool
		var mark sql.NullInt64
		if err := rows.Scan(&number, &judgeCode, &danceText, &roundNumber, &roundName, &voted, &mark); err != nil {
			return nil, nil, err
		}
		dance, err := models.ParseDance(danceText)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read score: %w", err)
		}
		if mark.Valid {
			finals = append(finals, models.FinalRoundScore{
				Number: number, JudgeCode: judgeCode, Dance: dance,
				RoundNumber: roundNumber, RoundName: roundName, Mark: int(mark.Int64),
			})
			continue
		}
		scores = append(scores, models.Score{
			Number: number, JudgeCode: judgeCode, Dance: dance,
			RoundNumber: roundNumber, RoundName: roundName, Voted: voted.Bool,
		})
	}
	return scores, finals, rows.Err()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var values []int
	for _, part := range strings.Split(s, ",") {
		if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			values = append(values, v)
		}
	}
	return values
}
