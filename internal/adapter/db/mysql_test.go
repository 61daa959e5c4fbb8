package db

import (
	"context"
	"encoding/json"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crackInsightBackend/internal/core/domain"
)

func newMockRepo(t *testing.T) (*mysqlRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewRepositoryFromDB(conn).(*mysqlRepository), mock
}

func TestListPairs_Filter(t *testing.T) {
	repo, mock := newMockRepo(t)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recovered := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM recovered_pairs")+`.*AND algorithm_id = \?.*AND recovered_at >= \?.*ORDER BY id LIMIT \?`).
		WithArgs("1000", since, 2).
		WillReturnRows(sqlmock.NewRows([]string{"hash", "plaintext", "algorithm_id", "recovered_at"}).
			AddRow("8846f7eaee8fb117ad06bdd830b7586c", "password", "1000", recovered).
			AddRow("32ed87bdb5fdc5e9cba88547376818d4", "$HEX[3132333435]", "1000", recovered))

	pairs, err := repo.ListPairs(context.Background(), domain.CorpusFilter{AlgorithmID: "1000", Since: since, Limit: 2})

	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "password", pairs[0].PlaintextRaw)
	assert.Equal(t, "$HEX[3132333435]", pairs[1].PlaintextRaw)
	assert.Equal(t, recovered, pairs[1].Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPairs_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM recovered_pairs").
		WillReturnRows(sqlmock.NewRows([]string{"hash", "plaintext", "algorithm_id", "recovered_at"}))

	pairs, err := repo.ListPairs(context.Background(), domain.CorpusFilter{})

	require.NoError(t, err)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
}

func TestListRunSummaries(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT algorithm_id, attack_mode, avg_hashrate FROM run_summaries WHERE algorithm_id = ?")).
		WithArgs("0").
		WillReturnRows(sqlmock.NewRows([]string{"algorithm_id", "attack_mode", "avg_hashrate"}).
			AddRow("0", 3, 2.5e10).
			AddRow("0", 0, 1.1e10))

	summaries, err := repo.ListRunSummaries(context.Background(), "0")

	require.NoError(t, err)
	assert.Equal(t, []domain.HistoricalRunSummary{
		{AlgorithmID: "0", AttackMode: 3, AvgHashrate: 2.5e10},
		{AlgorithmID: "0", AttackMode: 0, AvgHashrate: 1.1e10},
	}, summaries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC)
	snapshot := &domain.Snapshot{
		ID:        "2b1f4e0c-8a54-4b8e-9d6f-0f1d2c3b4a59",
		Name:      "q2 audit",
		CreatedAt: created,
		Result: &domain.AnalysisResult{
			Masks: []domain.MaskStat{{Mask: "?d?d", Count: 3, Complexity: big.NewInt(100), TimeToCrack: 1e-7}},
			Total: 3,
		},
	}
	encoded, err := json.Marshal(snapshot.Result)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO analysis_snapshots").
		WithArgs(snapshot.ID, snapshot.Name, created, encoded).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.SaveSnapshot(context.Background(), snapshot))

	mock.ExpectQuery("FROM analysis_snapshots").
		WithArgs(snapshot.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "result"}).
			AddRow(snapshot.ID, snapshot.Name, created, encoded))

	got, err := repo.GetSnapshot(context.Background(), snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, "q2 audit", got.Name)
	assert.Equal(t, uint64(3), got.Result.Total)
	assert.Equal(t, "100", got.Result.Masks[0].Complexity.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSnapshot_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("FROM analysis_snapshots").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "result"}))

	_, err := repo.GetSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestMigrate(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	for _, table := range []string{"recovered_pairs", "run_summaries", "analysis_snapshots"} {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}
