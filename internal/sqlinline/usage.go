package sqlinline

const QInsertUsageEvent = `--sql c283087c-2070-4aa2-869f-32cfe10e526e
insert into usage_events(id, user_id, content_id, event_type, country, created_at, properties)
values (gen_random_uuid(), $1::uuid, $2::uuid, $3::text, $4::text, now(), coalesce($5::jsonb, '{}'::jsonb));
`

const QStatsForUser = `--sql 521ec5e7-8bd3-4dc2-97be-975e3b29b949
select
  count(*) filter (where kind = 'IMAGE')              as images_total,
  count(*) filter (where kind = 'VIDEO')              as videos_total,
  count(*) filter (where status = 'COMPLETED')        as completed,
  count(*) filter (where status = 'FAILED')           as failed,
  count(*) filter (where status = 'GENERATING')       as in_flight,
  coalesce((select sum(amount) from credit_transactions t where t.user_id = $1::uuid), 0) as credits_spent
from contents
where user_id = $1::uuid;
`
