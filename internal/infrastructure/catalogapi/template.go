// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

const querySearchSource = `{
  "from": {{ .From }},
  "size": {{ .Size }},
  "track_total_hits": true,
  "query": {
    "bool": {
      "filter": [
        {
          "term": {"__state": "ACTIVE"}
        }
        {{- if .TypeName }},
        {
          "term": {
            "__typeName": {{ .TypeName | quote }}
          }
        }
        {{- end }}
        {{- if .Name }},
        {
          "prefix": {
            "name.keyword": {{ .Name | quote }}
          }
        }
        {{- end }}
        {{- if .Tags }},
        {
          "terms": {
            "__traitNames": [
              {{- $first := true -}}
              {{- range .Tags -}}
              {{- if $first -}}
              {{- $first = false -}}
              {{- else -}}
              ,
              {{- end -}}
              {{ . | quote }}
              {{- end -}}
            ]
          }
        }
        {{- end }}
        {{- if .RawQuery }},
        {{ .RawQuery }}
        {{- end }}
        {{- if .After }},
        {
          "bool": {
            "minimum_should_match": 1,
            "should": [
              {
                "range": {"__timestamp": {"gt": {{ .After.Timestamp }}}}
              },
              {
                "bool": {
                  "filter": [
                    {"term": {"__timestamp": {{ .After.Timestamp }}}},
                    {"range": {"__guid": {"gt": {{ .After.Guid | quote }}}}}
                  ]
                }
              }
            ]
          }
        }
        {{- end }}
      ]
    }
  },
  "sort": [
    {{- range $i, $s := .Sort }}
    {{- if $i }},{{ end }}
    {
      {{ $s.Field | quote }}: {"order": {{ if $s.Ascending }}"asc"{{ else }}"desc"{{ end }}}
    }
    {{- end }}
  ]
}`
