package sqlinline

const QFindUsersWithBirthday = `--sql 0a84c80e-3420-4336-b9a7-9aac27402b80
select id, name, birthday
from users
where birthday is not null
order by id;
`

const QFindUsersByIDs = `--sql 8fdcee8b-5495-48fd-a22c-8b8c529f41f0
select id, name, birthday
from users
where id = any($1::text[]);
`

const QIsFollowing = `--sql 7d559c98-3d80-43f8-850c-c770515b53c0
select exists(
  select 1 from follows
  where follower_id = $1::text
    and target_id = $2::text
);
`

const QFollowersOf = `--sql 8f14c822-a515-49ad-bed2-0e2b2f898157
select follower_id
from follows
where target_id = $1::text
order by follower_id;
`

const QHasWrittenLetter = `--sql 318893f9-c6e5-4c08-b14c-0945cf1735a0
select exists(
  select 1 from letters
  where user_id = $1::text
    and event_id = $2::text
);
`
