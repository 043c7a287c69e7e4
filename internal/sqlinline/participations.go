package sqlinline

const QInsertParticipation = `--sql 8673397b-79b4-48ea-9752-d5843fb3922a
insert into participations(id, event_id, user_id, amount, type, participated_at)
values ($1::text, $2::text, $3::text, $4::bigint, $5::text, $6::timestamptz);
`

const QGetParticipation = `--sql 478d9b9f-09d4-44da-a255-6090b59464c6
select id, event_id, user_id, amount, type, participated_at
from participations
where event_id = $1::text
  and user_id = $2::text;
`

const QListParticipations = `--sql 961557f3-421e-436a-96d3-ac7163e1659b
select id, event_id, user_id, amount, type, participated_at
from participations
where event_id = $1::text
order by participated_at, id;
`

const QCountParticipations = `--sql 5b092284-4cbd-492e-8009-92dfa4c3dc91
select count(*)
from participations
where event_id = $1::text;
`
