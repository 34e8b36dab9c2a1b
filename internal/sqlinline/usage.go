// Package sqlinline holds the inline SQL statements used by the audit trail.
package sqlinline

const QInsertUsageEvent = `--sql 7c1f2c7e-4b9d-4f11-9a43-2f8f5f0c2ab1
insert into usage_events(id, subject, request_id, event_type, success, latency_ms, country, created_at, properties)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::boolean, $5::int, nullif($6::text, ''), now(), coalesce($7::jsonb, '{}'::jsonb));
`
