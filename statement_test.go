package rowset

import (
	"errors"
	"testing"
)

func TestParseSelect(t *testing.T) {
	ast, err := parseSelect("SELECT id, name FROM people WHERE id >= 2 AND name != 'x' LIMIT 5")
	if err != nil {
		t.Fatal(err)
	}
	if ast.Star {
		t.Error("star set on an explicit column list")
	}
	if len(ast.Columns) != 2 || ast.Columns[0] != "id" || ast.Columns[1] != "name" {
		t.Errorf("columns = %v", ast.Columns)
	}
	if ast.Table != "people" {
		t.Errorf("table = %q", ast.Table)
	}
	if len(ast.Where) != 2 {
		t.Fatalf("conditions = %d", len(ast.Where))
	}
	if ast.Where[0].Column != "id" || ast.Where[0].Op != ">=" || *ast.Where[0].Value.Number != 2 {
		t.Errorf("first condition = %+v", ast.Where[0])
	}
	if ast.Where[1].Column != "name" || ast.Where[1].Op != "!=" || *ast.Where[1].Value.Str != "x" {
		t.Errorf("second condition = %+v", ast.Where[1])
	}
	if ast.Limit == nil || *ast.Limit != 5 {
		t.Errorf("limit = %v", ast.Limit)
	}

	star, err := parseSelect("select * from t")
	if err != nil {
		t.Fatal(err)
	}
	if !star.Star || star.Table != "t" || star.Where != nil || star.Limit != nil {
		t.Errorf("star query parsed as %+v", star)
	}

	if _, err := parseSelect("DELETE FROM people"); err == nil {
		t.Error("non-SELECT statement parsed")
	}
	if _, err := parseSelect("SELECT FROM people"); err == nil {
		t.Error("empty projection parsed")
	}
}

func TestExecuteIndexedEquality(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	rs, err := Query(session, "SELECT name FROM people WHERE id = 2")
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 1 || rs.ColumnCount() != 1 {
		t.Fatalf("got %d rows, %d columns", rs.RowCount(), rs.ColumnCount())
	}
	name, err := ValueAt[string](rs, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if name != "b" {
		t.Errorf("name = %q, wanted \"b\"", name)
	}
}

func TestExecuteNonIndexedFilter(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	rs, err := Query(session, "SELECT id FROM people WHERE name = 'a'")
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 1 {
		t.Fatalf("rows = %d", rs.RowCount())
	}
	id, err := ValueAt[int32](rs, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("id = %d", id)
	}
}

func TestNullCellsNeverMatchPredicates(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	// The third row has a NULL name; != must not treat NULL as a match.
	rs, err := Query(session, "SELECT id FROM people WHERE name != 'a'")
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 1 {
		t.Fatalf("rows = %d, wanted 1", rs.RowCount())
	}
	if id, _ := ValueAt[int32](rs, 0, 0); id != 2 {
		t.Errorf("id = %d, wanted 2", id)
	}
}

func TestComparisonOperators(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	err := session.CreateTable("scores", []ColumnDef{
		{Name: "player", Type: TypeString},
		{Name: "score", Type: TypeDouble},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = session.InsertRows("scores", []map[string]any{
		{"player": "p1", "score": 1.5},
		{"player": "p2", "score": 2.5},
		{"player": "p3", "score": 3.5},
	})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		query string
		want  int
	}{
		{"SELECT player FROM scores WHERE score > 1.5", 2},
		{"SELECT player FROM scores WHERE score >= 1.5", 3},
		{"SELECT player FROM scores WHERE score < 2.5", 1},
		{"SELECT player FROM scores WHERE score <= 2.5", 2},
		{"SELECT player FROM scores WHERE score != 2.5", 2},
		{"SELECT player FROM scores WHERE score > 1.5 AND score < 3.5", 1},
	}
	for _, tc := range cases {
		rs, err := Query(session, tc.query)
		if err != nil {
			t.Fatalf("%s: %v", tc.query, err)
		}
		if rs.RowCount() != tc.want {
			t.Errorf("%s: rows = %d, wanted %d", tc.query, rs.RowCount(), tc.want)
		}
	}
}

func TestLimit(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	rs, err := Query(session, "SELECT id FROM people LIMIT 2")
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 2 {
		t.Errorf("LIMIT clause: rows = %d", rs.RowCount())
	}

	rs, err = Query(session, "SELECT id FROM people", WithLimit(1))
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 1 {
		t.Errorf("WithLimit: rows = %d", rs.RowCount())
	}

	// The clause wins over the option.
	rs, err = Query(session, "SELECT id FROM people LIMIT 3", WithLimit(1))
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 3 {
		t.Errorf("clause precedence: rows = %d", rs.RowCount())
	}
}

func TestSelectStarMetadata(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	rs, err := Query(session, "SELECT * FROM people")
	if err != nil {
		t.Fatal(err)
	}
	if rs.ColumnCount() != 2 {
		t.Fatalf("columns = %d", rs.ColumnCount())
	}
	if name, _ := rs.ColumnName(0); name != "id" {
		t.Errorf("column 0 = %q", name)
	}
	if name, _ := rs.ColumnName(1); name != "name" {
		t.Errorf("column 1 = %q", name)
	}
	if typ, _ := rs.ColumnType(0); typ != TypeInt32 {
		t.Errorf("column 0 type = %v", typ)
	}
	if typ, _ := rs.ColumnTypeNamed("name"); typ != TypeString {
		t.Errorf("name type = %v", typ)
	}
	if length, _ := rs.ColumnLengthNamed("name"); length != 64 {
		t.Errorf("name length = %d", length)
	}
	meta, err := rs.Statement().MetaColumnNamed("name")
	if err != nil {
		t.Fatal(err)
	}
	if !meta.Nullable() || meta.Position() != 1 {
		t.Errorf("name meta = %+v", meta)
	}
	meta, err = rs.Statement().MetaColumnAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Nullable() || meta.Name() != "id" {
		t.Errorf("id meta = %+v", meta)
	}
}

func TestQueryIdentifiersAreCaseInsensitive(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	rs, err := Query(session, "SELECT ID, NAME FROM people WHERE ID = 1")
	if err != nil {
		t.Fatal(err)
	}
	if rs.RowCount() != 1 {
		t.Fatalf("rows = %d", rs.RowCount())
	}
	// Metadata carries the stored column names.
	if name, _ := rs.ColumnName(0); name != "id" {
		t.Errorf("column 0 = %q", name)
	}
}

func TestExecuteErrors(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	if _, err := Query(session, "SELECT id FROM nothere"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("unknown table = %v", err)
	}
	if _, err := Query(session, "SELECT nope FROM people"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown projection column = %v", err)
	}
	if _, err := Query(session, "SELECT id FROM people WHERE nope = 1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown predicate column = %v", err)
	}
	if _, err := Query(session, "SELEKT id FROM people"); err == nil {
		t.Error("malformed query executed")
	}
}

func TestExtractionsDowncastToTypedColumns(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)
	rs := queryPeople(t, session)

	// The extraction set holds the concrete typed columns, so a downcast to
	// the matching element type succeeds.
	ids, err := ColumnAt[int32](rs, 0)
	if err != nil {
		t.Fatalf("int32 downcast of the id column = %v", err)
	}
	if v, err := ids.Value(1); err != nil || v != 2 {
		t.Errorf("ids.Value(1) = %d, %v", v, err)
	}
	names, err := ColumnNamed[string](rs, "name")
	if err != nil {
		t.Fatalf("string downcast of the name column = %v", err)
	}
	if v, err := names.Value(0); err != nil || v != "a" {
		t.Errorf("names.Value(0) = %q, %v", v, err)
	}
	if !names.IsNull(2) {
		t.Error("name column lost its NULL flag")
	}
}

func TestStatementIsNull(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)
	rs := queryPeople(t, session)
	stmt := rs.Statement()

	want := map[[2]int]bool{
		{0, 0}: false, {0, 1}: false, {0, 2}: false,
		{1, 0}: false, {1, 1}: false, {1, 2}: true,
	}
	for key, expect := range want {
		null, err := stmt.IsNull(key[0], key[1])
		if err != nil {
			t.Fatal(err)
		}
		if null != expect {
			t.Errorf("IsNull(%d, %d) = %v", key[0], key[1], null)
		}
	}
	if _, err := stmt.IsNull(5, 0); !errors.Is(err, ErrRange) {
		t.Errorf("IsNull out-of-range column = %v", err)
	}
	if _, err := stmt.IsNull(0, 5); !errors.Is(err, ErrRange) {
		t.Errorf("IsNull out-of-range row = %v", err)
	}
}

func TestReexecuteReplacesExtractions(t *testing.T) {
	session, cleanup := setupSession(t)
	defer cleanup()
	seedPeople(t, session)

	stmt := NewStatement(session, "SELECT id FROM people")
	if err := stmt.Execute(); err != nil {
		t.Fatal(err)
	}
	if stmt.RowsHandled() != 3 {
		t.Fatalf("rows = %d", stmt.RowsHandled())
	}
	if err := session.Insert("people", map[string]any{"id": 4, "name": "d"}); err != nil {
		t.Fatal(err)
	}
	if err := stmt.Execute(); err != nil {
		t.Fatal(err)
	}
	if stmt.RowsHandled() != 4 {
		t.Errorf("rows after re-execute = %d", stmt.RowsHandled())
	}
}
