package sqlinline

// The recovery sweep claims GENERATING rows whose poller was lost to a process
// restart. Claiming bumps updated_at so a row is not re-claimed while a live
// sweep still owns it; the stale cutoff is supplied by the caller.
const QClaimOrphanedContent = `--sql 71b79219-bbf0-465f-811f-04c5e0ccec42
with orphan as (
    select id
    from contents
    where status = 'GENERATING'
      and provider_request_id <> ''
      and updated_at < now() - ($1::int * interval '1 second')
    order by updated_at asc
    for update skip locked
    limit 1
),
claimed as (
    update contents
    set updated_at = now()
    where id in (select id from orphan)
    returning id
)
select id from claimed;
`
