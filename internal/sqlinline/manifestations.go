package sqlinline

const QInsertManifestation = `--sql cdb81996-5e93-4ab5-82d5-d19cf91ac84f
insert into manifestations (id, user_id, original_image_url, generated_image_url, dreams, affirmation, created_at, updated_at)
values ($1::uuid, $2::uuid, $3::text, $4::text, $5::text[], $6::text, now(), now())
returning id, created_at, updated_at;
`

const QListManifestationsByUser = `--sql 25759556-1594-414c-95f0-a0a9e5d28515
select
  id,
  user_id,
  original_image_url,
  generated_image_url,
  dreams,
  affirmation,
  created_at,
  updated_at
from manifestations
where user_id = $1::uuid
order by created_at desc;
`

const QSelectManifestationByID = `--sql ffb3c42d-fd3a-4ff9-b34f-c868fcc221fd
select id, user_id, original_image_url, generated_image_url, dreams, affirmation, created_at, updated_at
from manifestations
where id = $1::uuid
limit 1;
`

const QDeleteManifestation = `--sql fd9ae39d-3cf3-4304-8ae4-bc452efbf4b1
delete from manifestations
where id = $1::uuid;
`
