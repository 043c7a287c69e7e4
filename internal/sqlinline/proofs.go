package sqlinline

const QInsertPurchaseProof = `--sql b883f159-6767-4906-a724-5f352dbc366c
insert into purchase_proofs(id, event_id, images, message, created_at)
values ($1::text, $2::text, $3::text[], $4::text, $5::timestamptz);
`

const QGetPurchaseProofByEvent = `--sql de479c7c-d51d-4f87-8e32-c845a2160bf4
select id, event_id, images, message, created_at
from purchase_proofs
where event_id = $1::text;
`
