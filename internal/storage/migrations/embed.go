package migrations

import "embed"

// PostgresFS embeds the earnings calendar schema migrations.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS embeds the option quote and option volume schema
// migrations.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
