package sqlinline

const QInsertShareToken = `--sql a377375d-2573-4dab-a5c1-3e5ad41f8535
insert into share_tokens(token, event_id, expires_at, is_active, created_at)
values ($1::text, $2::text, $3::timestamptz, $4::boolean, $5::timestamptz);
`

const QGetShareToken = `--sql 367464d9-ff5a-4f49-ae82-57482ccc5036
select token, event_id, expires_at, is_active, created_at
from share_tokens
where token = $1::text;
`

const QPurgeShareTokens = `--sql cdadcaab-3b4d-418b-b86b-25083eb79abe
delete from share_tokens
where not is_active
   or expires_at <= $1::timestamptz;
`
