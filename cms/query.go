package cms

// writingQuery selects single writing by slug. Only the shape of the result
// matters to the decoder, see writing.Parse.
const writingQuery = `*[_type == "writing" && slug.current == $slug][0]{
  _id,
  title,
  "slug": slug.current,
  publishedAt,
  mainImage{ asset->{ _id, url } },
  body[]{
    ...,
    markDefs[]{
      ...,
      _type == "glossaryRef" => { "term": reference->{ "slug": slug.current, term, definition } }
    },
    _type in ["image", "audio"] => { asset->{ _id, url } },
    _type == "dialogueGroup" => {
      content[]{
        ...,
        markDefs[]{
          ...,
          _type == "glossaryRef" => { "term": reference->{ "slug": slug.current, term, definition } }
        }
      }
    }
  },
  "glossary": glossary[]->{ "slug": slug.current, term, definition }
}`
