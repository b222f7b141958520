package store

// Result cache queries.
const (
	queryCacheGet = `
		SELECT result FROM match_cache
		WHERE cache_key = $1 AND (expires_at IS NULL OR expires_at > now())`

	queryCachePut = `
		INSERT INTO match_cache (cache_key, result, stored_at, expires_at)
		VALUES (@cache_key, @result, now(), @expires_at)
		ON CONFLICT (cache_key) DO UPDATE SET
			result = EXCLUDED.result,
			stored_at = EXCLUDED.stored_at,
			expires_at = EXCLUDED.expires_at`

	queryCacheStats = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at <= now()),
			COALESCE(SUM(pg_column_size(result)), 0),
			MIN(stored_at),
			MAX(stored_at)
		FROM match_cache`

	queryCacheClear = `DELETE FROM match_cache`
)

// Match history queries.
const (
	queryInsertRun = `
		INSERT INTO match_runs (id, started_at, queries, found)
		VALUES ($1, now(), $2, $3)`

	queryInsertResult = `
		INSERT INTO match_results (
			run_id, query_id, query_name, found,
			retailer, candidate_name, price,
			confidence, level, strategy, match_type, product_key,
			result, matched_at
		) VALUES (
			@run_id, @query_id, @query_name, @found,
			@retailer, @candidate_name, @price,
			@confidence, @level, @strategy, @match_type, @product_key,
			@result, @matched_at
		)`

	queryListRuns = `
		SELECT id, started_at, queries, found FROM match_runs
		ORDER BY started_at DESC
		LIMIT $1`
)
