package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"logisticshub/internal/domain/models"
)

const upsertRouteSQL = "INSERT INTO routes (origin, destination, distance_km, suggested_price) VALUES (?,?,0,0)"

func TestRouteUpsertExistingPairDoesNotInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id) reports 0 affected rows
	// for an existing pair and hands back its id.
	mock.ExpectExec(regexp.QuoteMeta(upsertRouteSQL)+".*ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID\\(id\\)").
		WithArgs("SAN ANTONIO", "SANTIAGO").
		WillReturnResult(sqlmock.NewResult(7, 0))

	id, created, err := RouteRepository{DB: db}.Upsert(context.Background(), "SAN ANTONIO", "SANTIAGO")
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if id != 7 || created {
		t.Fatalf("expected existing id 7, got id=%d created=%v", id, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteCreateAndUpsertShareNormalization(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := RouteRepository{DB: db}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO routes (origin, destination, distance_km, suggested_price) VALUES (?,?,?,?)")).
		WithArgs("SAN ANTONIO", "LOS ANDES", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))
	if _, err := repo.Create(context.Background(), models.Route{Origin: " san  antonio", Destination: "Los\tAndes "}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(upsertRouteSQL)).
		WithArgs("SAN ANTONIO", "LOS ANDES").
		WillReturnResult(sqlmock.NewResult(4, 0))
	id, created, err := repo.Upsert(context.Background(), "SAN ANTONIO", "LOS ANDES")
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if id != 4 || created {
		t.Fatalf("expected the hand-entered route 4, got id=%d created=%v", id, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteUpsertNovelPairCreatesWithZeroDistanceAndPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(upsertRouteSQL)).
		WithArgs("VALPARAISO", "LOS ANDES").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, created, err := RouteRepository{DB: db}.Upsert(context.Background(), "VALPARAISO", "LOS ANDES")
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if id != 42 || !created {
		t.Fatalf("expected new id 42, got id=%d created=%v", id, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Two resolutions of the same new pair go through the unique key, so the
// loser sees the winner's id instead of inserting a second row.
func TestRouteUpsertConcurrentNovelPairYieldsOneID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(upsertRouteSQL)).
		WithArgs("SAN ANTONIO", "RANCAGUA").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertRouteSQL)).
		WithArgs("SAN ANTONIO", "RANCAGUA").
		WillReturnResult(sqlmock.NewResult(9, 0))

	repo := RouteRepository{DB: db}
	id1, created1, err := repo.Upsert(context.Background(), "SAN ANTONIO", "RANCAGUA")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	id2, created2, err := repo.Upsert(context.Background(), "SAN ANTONIO", "RANCAGUA")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected one id, got %d and %d", id1, id2)
	}
	if !created1 || created2 {
		t.Fatalf("only the first call should report creation, got %v %v", created1, created2)
	}
}
