package sqlinline

const QSelectIntegrationToken = `--sql d887b698-b8f2-4b8a-9412-9ab29545b4da
select token
from integration_tokens
where owner_id = $1::uuid and provider = $2::text
order by updated_at desc
limit 1;
`

const QUpsertIntegrationToken = `--sql e1544825-84ac-40b0-b307-41a24b3e27bb
insert into integration_tokens(id, owner_id, provider, token, properties, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, coalesce($4::jsonb, '{}'::jsonb), now(), now())
on conflict (owner_id, provider)
do update set token = excluded.token, properties = excluded.properties, updated_at = now();
`
