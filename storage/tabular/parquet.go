// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/poiesic/hemeroteca/core"
)

var columns = []string{
	"channel",
	"title",
	"link",
	"description",
	"creators",
	"pub_date",
	"categories",
	"keywords",
	"clean_content",
	"error",
	"feedback_date",
	"relevance",
	"title_embedding",
	"bow_embedding",
}

// WriteParquet writes records to a snappy-compressed Parquet file at path.
// Every record must share one embedding dimensionality.
func WriteParquet(ctx context.Context, path string, records []*core.FeedbackRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	dims := len(records[0].TitleEmbedding)
	for _, r := range records {
		if err := core.ValidateFeedbackRecord(r); err != nil {
			return err
		}
		if len(r.TitleEmbedding) != dims {
			return fmt.Errorf("%w: record %s has %d dimensions, expected %d",
				core.ErrInvalidFeedbackRecord, r.Item.Link, len(r.TitleEmbedding), dims)
		}
	}

	return withConn(ctx, func(conn *sql.Conn) error {
		create := fmt.Sprintf(`CREATE TABLE feedback (
			channel VARCHAR, title VARCHAR, link VARCHAR, description VARCHAR,
			creators VARCHAR, pub_date VARCHAR, categories VARCHAR, keywords VARCHAR,
			clean_content VARCHAR, error VARCHAR, feedback_date VARCHAR,
			relevance VARCHAR, title_embedding FLOAT[%d], bow_embedding FLOAT[%d]
		)`, dims, dims)
		if _, err := conn.ExecContext(ctx, create); err != nil {
			return fmt.Errorf("failed to create feedback table: %w", err)
		}

		insert := fmt.Sprintf(`INSERT INTO feedback VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			CAST(CAST(? AS FLOAT[]) AS FLOAT[%d]), CAST(CAST(? AS FLOAT[]) AS FLOAT[%d]))`, dims, dims)
		stmt, err := conn.PrepareContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			rw := toRow(r)
			args := make([]any, len(rw))
			for i, v := range rw[:12] {
				args[i] = v
			}
			args[12] = "[" + rw[12] + "]"
			args[13] = "[" + rw[13] + "]"
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert %s: %w", r.Item.Link, err)
			}
		}

		copyStmt := fmt.Sprintf("COPY feedback TO %s (FORMAT PARQUET, COMPRESSION SNAPPY)", quote(path))
		if _, err := conn.ExecContext(ctx, copyStmt); err != nil {
			return fmt.Errorf("failed to write parquet file: %w", err)
		}
		return nil
	})
}

// ReadParquet reads records written by WriteParquet.
func ReadParquet(ctx context.Context, path string) ([]*core.FeedbackRecord, error) {
	var records []*core.FeedbackRecord
	err := withConn(ctx, func(conn *sql.Conn) error {
		selects := make([]string, len(columns))
		for i, c := range columns {
			selects[i] = fmt.Sprintf("COALESCE(CAST(%s AS VARCHAR), '')", c)
		}
		query := fmt.Sprintf("SELECT %s FROM read_parquet(%s)", strings.Join(selects, ", "), quote(path))

		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to read parquet file: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var rw row
			dest := make([]any, len(rw))
			for i := range rw {
				dest[i] = &rw[i]
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			record, err := fromRow(rw)
			if err != nil {
				return fmt.Errorf("row %d: %w", len(records)+1, err)
			}
			records = append(records, record)
		}
		return rows.Err()
	})
	return records, err
}

// withConn runs fn on a single connection to a fresh in-memory database.
func withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to duckdb: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// quote renders s as a SQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
