package pgsql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type journalRepo struct{ BaseRepository }

func marshalMeta(meta map[string]interface{}) ([]byte, error) {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return json.Marshal(meta)
}

func unmarshalMeta(raw []byte) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}
	var meta map[string]interface{}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (r journalRepo) linesForJournals(ctx context.Context, journalIDs []string) (map[string][]domain.TransactionLine, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.TransactionLine{}, nil
	}
	const query = `
		SELECT id, journal_id, account_id, side, amount, currency_code, exchange_rate
		FROM transaction_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, id;
	`
	rows, err := r.DB().Query(ctx, query, journalIDs)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	out := make(map[string][]domain.TransactionLine)
	for rows.Next() {
		var l domain.TransactionLine
		if err := rows.Scan(&l.ID, &l.JournalID, &l.AccountID, &l.Side, &l.Amount, &l.CurrencyCode, &l.ExchangeRate); err != nil {
			return nil, classifyErr(err)
		}
		out[l.JournalID] = append(out[l.JournalID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}
	return out, nil
}

func (r journalRepo) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	const query = `SELECT id, occurred_at, memo, meta, idempotency_key FROM journals WHERE id = $1;`

	var j domain.Journal
	var memo, idemKey *string
	var rawMeta []byte
	err := r.DB().QueryRow(ctx, query, journalID).Scan(&j.ID, &j.OccurredAt, &memo, &rawMeta, &idemKey)
	if err != nil {
		classified := classifyErr(err)
		if isNotFound(classified) {
			return nil, nil
		}
		return nil, classified
	}
	if memo != nil {
		j.Memo = *memo
	}
	if idemKey != nil {
		j.IdempotencyKey = *idemKey
	}
	meta, err := unmarshalMeta(rawMeta)
	if err != nil {
		return nil, classifyErr(err)
	}
	j.Meta = meta

	lines, err := r.linesForJournals(ctx, []string{journalID})
	if err != nil {
		return nil, err
	}
	j.Lines = lines[journalID]
	return &j, nil
}

func (r journalRepo) FindJournalByIdempotencyKey(ctx context.Context, key string) (*domain.Journal, error) {
	const query = `SELECT id FROM journals WHERE idempotency_key = $1;`

	var id string
	err := r.DB().QueryRow(ctx, query, key).Scan(&id)
	if err != nil {
		classified := classifyErr(err)
		if isNotFound(classified) {
			return nil, nil
		}
		return nil, classified
	}
	return r.FindJournalByID(ctx, id)
}

func (r journalRepo) SaveJournal(ctx context.Context, journal domain.Journal) error {
	rawMeta, err := marshalMeta(journal.Meta)
	if err != nil {
		return classifyErr(err)
	}

	var idemKey *string
	if journal.IdempotencyKey != "" {
		idemKey = &journal.IdempotencyKey
	}
	var memo *string
	if journal.Memo != "" {
		memo = &journal.Memo
	}

	const journalQuery = `
		INSERT INTO journals (id, occurred_at, memo, meta, idempotency_key)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.DB().Exec(ctx, journalQuery, journal.ID, journal.OccurredAt, memo, rawMeta, idemKey); err != nil {
		return classifyErr(err)
	}

	const lineQuery = `
		INSERT INTO transaction_lines (id, journal_id, account_id, side, amount, currency_code, exchange_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, l := range journal.Lines {
		batch.Queue(lineQuery, l.ID, l.JournalID, l.AccountID, l.Side, l.Amount, l.CurrencyCode, l.ExchangeRate)
	}
	br := r.DB().SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return classifyErr(err)
	}
	return nil
}

func (r journalRepo) ListLedger(ctx context.Context, q portsrepo.LedgerQuery) ([]domain.Journal, error) {
	rawMeta, err := marshalMeta(q.Meta)
	if err != nil {
		return nil, classifyErr(err)
	}

	order := "ASC"
	if q.Order == "DESC" {
		order = "DESC"
	}
	query := `
		SELECT DISTINCT j.id, j.occurred_at, j.memo, j.meta, j.idempotency_key
		FROM journals j
		JOIN transaction_lines tl ON tl.journal_id = j.id
		JOIN accounts a ON a.id = tl.account_id
		WHERE a.full_name = $1
		  AND j.occurred_at >= $2 AND j.occurred_at <= $3
		  AND j.meta @> $4::jsonb
		ORDER BY j.occurred_at ` + order + `
		OFFSET $5 LIMIT $6;
	`
	rows, err := r.DB().Query(ctx, query, q.AccountFullName, q.Start, q.End, rawMeta, q.Offset, q.Limit)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var j domain.Journal
		var memo, idemKey *string
		var raw []byte
		if err := rows.Scan(&j.ID, &j.OccurredAt, &memo, &raw, &idemKey); err != nil {
			return nil, classifyErr(err)
		}
		if memo != nil {
			j.Memo = *memo
		}
		if idemKey != nil {
			j.IdempotencyKey = *idemKey
		}
		meta, err := unmarshalMeta(raw)
		if err != nil {
			return nil, classifyErr(err)
		}
		j.Meta = meta
		journals = append(journals, j)
		ids = append(ids, j.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}

	lines, err := r.linesForJournals(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range journals {
		journals[i].Lines = lines[journals[i].ID]
	}
	return journals, nil
}

func (r journalRepo) SumLinesForAccount(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
		SELECT
			COALESCE(SUM(CASE WHEN tl.side = 'DEBIT' THEN tl.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN tl.side = 'CREDIT' THEN tl.amount ELSE 0 END), 0)
		FROM transaction_lines tl
		JOIN journals j ON j.id = tl.journal_id
		WHERE tl.account_id = $1 AND j.occurred_at <= $2;
	`
	var debit, credit decimal.Decimal
	err := r.DB().QueryRow(ctx, query, accountID, asOf).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, classifyErr(err)
	}
	return debit, credit, nil
}

func (r journalRepo) ListLinesInWindow(ctx context.Context, start, end time.Time, meta map[string]interface{}) ([]domain.TransactionLine, error) {
	rawMeta, err := marshalMeta(meta)
	if err != nil {
		return nil, classifyErr(err)
	}

	const query = `
		SELECT tl.id, tl.journal_id, tl.account_id, tl.side, tl.amount, tl.currency_code, tl.exchange_rate
		FROM transaction_lines tl
		JOIN journals j ON j.id = tl.journal_id
		WHERE j.occurred_at >= $1 AND j.occurred_at <= $2
		  AND j.meta @> $3::jsonb;
	`
	rows, err := r.DB().Query(ctx, query, start, end, rawMeta)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	out := make([]domain.TransactionLine, 0)
	for rows.Next() {
		var l domain.TransactionLine
		if err := rows.Scan(&l.ID, &l.JournalID, &l.AccountID, &l.Side, &l.Amount, &l.CurrencyCode, &l.ExchangeRate); err != nil {
			return nil, classifyErr(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}
	return out, nil
}
