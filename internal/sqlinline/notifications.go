package sqlinline

const QInsertNotification = `--sql 9e923685-ad2c-46c6-90ba-548a712eb736
insert into notifications(id, recipient_id, type, title, message, created_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, now());
`
