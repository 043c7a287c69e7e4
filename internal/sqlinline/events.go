// Package sqlinline holds every SQL statement the repositories run. Each
// statement starts with a --sql <uuid> marker that the SQL runner logs and
// strips before execution.
package sqlinline

const QCloseStaleActiveEvent = `--sql eee08f53-3733-41eb-b955-51dcce731485
update events
set status = 'closed', updated_at = $2::timestamptz
where owner_id = $1::text
  and status = 'active'
  and deadline < $2::timestamptz;
`

const QInsertActiveEvent = `--sql 5e185f96-f161-4d1b-8686-39aa1649ea84
insert into events(id, owner_id, title, pooled_amount, deadline, status, created_at, updated_at)
values ($1::text, $2::text, $3::text, 0, $4::timestamptz, 'active', $5::timestamptz, $5::timestamptz);
`

const QHasActiveEvent = `--sql c0f754a7-083f-4d0a-811d-e1a54d24546c
select exists(
  select 1 from events
  where owner_id = $1::text
    and status = 'active'
    and deadline >= $2::timestamptz
);
`

const QGetEvent = `--sql c3c1c8db-a30c-485c-a2a8-a197177c50c0
select id, owner_id, title, pooled_amount, deadline, status, created_at, updated_at
from events
where id = $1::text;
`

const QGetEventForUpdate = `--sql d7c9a03e-1ffd-4277-aeb5-94d005200865
select id, owner_id, title, pooled_amount, deadline, status, created_at, updated_at
from events
where id = $1::text
for update;
`

const QFindActiveEventByOwner = `--sql 56dab869-4978-4039-aaa0-38b3c08f04c7
select id, owner_id, title, pooled_amount, deadline, status, created_at, updated_at
from events
where owner_id = $1::text
  and status = 'active'
limit 1;
`

const QTransitionEventStatus = `--sql b446ce97-83f3-4b8b-abc7-ce1f5411e7a2
update events
set status = $3::text, updated_at = $4::timestamptz
where id = $1::text
  and status = $2::text
returning id, owner_id, title, pooled_amount, deadline, status, created_at, updated_at;
`

const QCloseExpiredEvents = `--sql 02c486da-048c-46a8-b94e-26575445e486
update events
set status = 'closed', updated_at = $1::timestamptz
where status = 'active'
  and deadline < $1::timestamptz
returning id, owner_id, title, pooled_amount, deadline, status, created_at, updated_at;
`

const QIncrementPooledAmount = `--sql 8e990e6c-36a8-4d3c-b931-f03b45241387
update events
set pooled_amount = pooled_amount + $2::bigint, updated_at = $3::timestamptz
where id = $1::text
returning pooled_amount;
`
