package sqlinline

const QInsertContent = `--sql 43ef0435-4938-46f3-a306-0a72670a028a
insert into contents(
  id,
  user_id,
  kind,
  mode,
  prompt,
  input_images,
  first_frame_image,
  last_frame_image,
  aspect_ratio,
  resolution,
  output_format,
  duration_seconds,
  generate_audio,
  status
)
values (
  $1::uuid,
  $2::uuid,
  $3::text,
  $4::text,
  $5::text,
  coalesce($6::jsonb, '[]'::jsonb),
  $7::text,
  $8::text,
  $9::text,
  $10::text,
  $11::text,
  $12::int,
  $13::boolean,
  'PENDING'
);
`

const QSelectContent = `--sql 13f1df3c-1115-4fd3-867d-3406f9c442a1
select id, user_id, kind, mode, prompt, input_images, first_frame_image, last_frame_image,
       aspect_ratio, resolution, output_format, duration_seconds, generate_audio,
       status, media_url, thumbnail_url, error_message, provider_request_id, metadata,
       created_at, updated_at
from contents
where id = $1::uuid;
`

const QSelectContentForUser = `--sql cf578d33-6ba9-42ae-99f2-c518f555ff02
select id, user_id, kind, mode, prompt, input_images, first_frame_image, last_frame_image,
       aspect_ratio, resolution, output_format, duration_seconds, generate_audio,
       status, media_url, thumbnail_url, error_message, provider_request_id, metadata,
       created_at, updated_at
from contents
where id = $1::uuid and user_id = $2::uuid;
`

const QListContentsForUser = `--sql 01698ed3-4804-4170-866d-3ba4fc3497f4
select id, user_id, kind, mode, prompt, input_images, first_frame_image, last_frame_image,
       aspect_ratio, resolution, output_format, duration_seconds, generate_audio,
       status, media_url, thumbnail_url, error_message, provider_request_id, metadata,
       created_at, updated_at
from contents
where user_id = $1::uuid
order by created_at desc
limit $2::int;
`

const QMarkContentGenerating = `--sql 5a6fc955-3439-4fef-be1d-1a35d95d5232
update contents
set status = 'GENERATING',
    provider_request_id = $2::text,
    updated_at = now()
where id = $1::uuid and status = 'PENDING';
`

// Polling sessions bump updated_at on every attempt. The recovery sweep
// treats a stale updated_at as proof the session died, so a live session
// must keep it fresh or the sweep will start a competing one.
const QTouchContentGenerating = `--sql 9c1d2a84-30fb-44c7-9f62-7a1f6f1fb0d3
update contents
set updated_at = now()
where id = $1::uuid and status = 'GENERATING';
`

const QMarkContentCompleted = `--sql 4b28a495-fefe-40d8-88dd-6a86237505cc
update contents
set status = 'COMPLETED',
    media_url = $2::text,
    thumbnail_url = $3::text,
    metadata = coalesce($4::jsonb, metadata),
    updated_at = now()
where id = $1::uuid and status = 'GENERATING';
`

const QMarkContentFailed = `--sql fde813fb-1b66-45a1-9266-fba7c4d569b9
update contents
set status = 'FAILED',
    error_message = $2::text,
    updated_at = now()
where id = $1::uuid and status in ('PENDING', 'GENERATING');
`
