package sqlinline

const QSelectUserByID = `--sql fbfa377d-6dfd-4eb9-ade9-74489530aef7
select id, email, name, locale, role, credits, created_at, updated_at
from users
where id = $1::uuid;
`

const QSelectOwnerID = `--sql 5a07a9e3-3c13-48f2-a126-b0569127f18a
select id from users where role = 'owner' order by created_at asc limit 1;
`

// Admin top-up, used by the grantcredits CLI only. The orchestrator itself
// never writes balances outside the settlement debit.
const QGrantCredits = `--sql cb44b1ac-58d2-42ea-bbe1-c3816ec1abd7
update users
set credits = credits + $2::int,
    updated_at = now()
where id = $1::uuid
returning credits;
`
