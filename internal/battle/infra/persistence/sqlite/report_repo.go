package sqlite

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/infra/persistence/model"
	gd "DotWars/internal/game/domain"
	"DotWars/modules/kit/errx"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS battle_reports (
	battle_id TEXT PRIMARY KEY,
	attacker TEXT NOT NULL,
	defender TEXT NOT NULL,
	winner TEXT NOT NULL DEFAULT '',
	reason TEXT NOT NULL,
	turns INTEGER NOT NULL,
	payload TEXT NOT NULL,
	resolved_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_battle_reports_resolved ON battle_reports(resolved_at);
CREATE INDEX IF NOT EXISTS idx_battle_reports_attacker ON battle_reports(attacker);
CREATE INDEX IF NOT EXISTS idx_battle_reports_defender ON battle_reports(defender);
`

// ReportRepo 单机部署时的战报库。
type ReportRepo struct {
	conn *sqlx.DB
}

func NewReportRepo(conn *sqlx.DB) *ReportRepo {
	return &ReportRepo{conn: conn}
}

func (r *ReportRepo) Migrate(ctx context.Context) error {
	_, err := r.conn.ExecContext(ctx, schema)
	return err
}

func (r *ReportRepo) Save(ctx context.Context, rep *entity.BattleReport) error {
	if rep == nil {
		return nil
	}
	row, err := model.ReportToRow(rep)
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithData("battle_id", rep.BattleID)
	}
	_, err = r.conn.NamedExecContext(ctx, `INSERT OR REPLACE INTO battle_reports
		(battle_id, attacker, defender, winner, reason, turns, payload, resolved_at)
		VALUES (:battle_id, :attacker, :defender, :winner, :reason, :turns, :payload, :resolved_at)`, row)
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("battle_id", rep.BattleID)
	}
	return nil
}

func (r *ReportRepo) Get(ctx context.Context, battleID string) (*entity.BattleReport, error) {
	var row model.BattleReport
	err := r.conn.GetContext(ctx, &row, "SELECT * FROM battle_reports WHERE battle_id = ?", battleID)
	switch {
	case err == nil:
		return model.RowToReport(&row)
	case errors.Is(err, sql.ErrNoRows):
		return nil, gd.ErrBattleNotFound.WithData("battle_id", battleID)
	default:
		return nil, errx.ErrUnavailable.WithCause(err).WithData("battle_id", battleID)
	}
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]*entity.BattleReport, error) {
	if limit <= 0 {
		limit = model.DefaultListLimit
	}
	var rows []model.BattleReport
	err := r.conn.SelectContext(ctx, &rows,
		"SELECT * FROM battle_reports ORDER BY resolved_at DESC, battle_id DESC LIMIT ?", limit)
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	out := make([]*entity.BattleReport, 0, len(rows))
	for i := range rows {
		rep, err := model.RowToReport(&rows[i])
		if err != nil {
			return nil, errx.ErrInternal.WithCause(err)
		}
		out = append(out, rep)
	}
	return out, nil
}
