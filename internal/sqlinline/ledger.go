package sqlinline

const QSelectCreditBalance = `--sql cd1067cd-7252-4854-a9d5-30341013da9a
select credits from users where id = $1::uuid;
`

// Settlement is a single atomic statement: the transaction insert and the
// balance decrement either both apply or neither does. The unique index on
// credit_transactions.content_id makes the content id the dedup key; a
// conflicting insert yields zero rows and leaves the balance untouched.
const QDebitCredits = `--sql 7bd28bc3-455a-4889-bc63-5d865535bf16
with tx as (
  insert into credit_transactions(id, user_id, content_id, amount, description, created_at)
  values (gen_random_uuid(), $1::uuid, $2::uuid, $3::int, $4::text, now())
  on conflict (content_id) do nothing
  returning user_id, amount
),
debited as (
  update users u
  set credits = greatest(u.credits - tx.amount, 0),
      updated_at = now()
  from tx
  where u.id = tx.user_id
  returning u.id
)
select count(*) from debited;
`

const QListCreditTransactions = `--sql 5543a614-7ef0-4b21-b61d-815c59e7aec7
select id, user_id, content_id, amount, description, created_at
from credit_transactions
where user_id = $1::uuid
order by created_at desc
limit $2::int;
`
