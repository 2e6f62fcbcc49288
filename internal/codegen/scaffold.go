package codegen

import (
	"bytes"
	"text/template"

	"github.com/conneroisu/blockcraft/internal/types"
)

// Scaffold keys.
const (
	KeyReact   = "react"
	KeyExpress = "express"
	KeyPackage = "package"
)

// ScaffoldTemplate is one file of the three-file project scaffold.
type ScaffoldTemplate struct {
	Key         string
	FileName    string
	Path        string
	Description string
	Content     string
}

// ScaffoldFile is a rendered scaffold file.
type ScaffoldFile struct {
	Key      string `json:"key"`
	FileName string `json:"fileName"`
	Path     string `json:"path"`
	Content  string `json:"content"`
}

// scaffoldContext holds the values scaffold templates may reference.
type scaffoldContext struct {
	ProjectName string
	Slug        string
}

// ScaffoldTemplates returns the scaffold files in their fixed order.
func ScaffoldTemplates() []ScaffoldTemplate {
	return []ScaffoldTemplate{
		{
			Key:         KeyReact,
			FileName:    "App.jsx",
			Path:        "frontend/src/App.jsx",
			Description: "Frontend entry module",
			Content:     reactTemplate,
		},
		{
			Key:         KeyExpress,
			FileName:    "server.js",
			Path:        "backend/server.js",
			Description: "Backend service skeleton",
			Content:     expressTemplate,
		},
		{
			Key:         KeyPackage,
			FileName:    "package.json",
			Path:        "package.json",
			Description: "Project manifest",
			Content:     packageTemplate,
		},
	}
}

var scaffoldSet = func() map[string]*template.Template {
	out := make(map[string]*template.Template)
	for _, st := range ScaffoldTemplates() {
		out[st.Key] = template.Must(template.New(st.Key).Delims("[[", "]]").Parse(st.Content))
	}
	return out
}()

// Scaffold renders the scaffold file for key. Only the project name reaches
// the output; components and the backend schema do not. Unknown keys yield "".
func Scaffold(project types.Project, key string) string {
	tmpl, ok := scaffoldSet[key]
	if !ok {
		return ""
	}
	ctx := scaffoldContext{ProjectName: project.Name, Slug: Slug(project.Name)}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return ""
	}
	return buf.String()
}

// ScaffoldFiles renders all three scaffold files in fixed order.
func ScaffoldFiles(project types.Project) []ScaffoldFile {
	templates := ScaffoldTemplates()
	out := make([]ScaffoldFile, 0, len(templates))
	for _, st := range templates {
		out = append(out, ScaffoldFile{
			Key:      st.Key,
			FileName: st.FileName,
			Path:     st.Path,
			Content:  Scaffold(project, st.Key),
		})
	}
	return out
}

const reactTemplate = `// frontend/src/App.jsx
import React from 'react';
import './App.css';
// Your visually designed components would be imported here.

export default function App() {
  return (
    <div>
      {/* React components generated from the visual canvas go here */}
      <h1>[[.ProjectName]]</h1>
      <p>This is a MERN Stack frontend generated by WebBuilder Pro.</p>
    </div>
  );
}
`

const expressTemplate = `// backend/server.js
const express = require('express');
const cors = require('cors');
const app = express();
const PORT = process.env.PORT || 5000;

app.use(cors());
app.use(express.json());

app.get('/', (req, res) => {
  res.send('MERN Stack backend is running!');
});

app.post('/api/contact', (req, res) => {
    const { name, email, message } = req.body;
    console.log('Received contact form submission:', req.body);
    res.status(200).json({ message: 'Form submitted successfully!' });
});

app.listen(PORT, () => {
  console.log(` + "`Server is running on http://localhost:${PORT}`" + `);
});
`

const packageTemplate = `{
  "name": "[[.Slug]]-mern",
  "version": "1.0.0",
  "description": "A MERN stack project generated by WebBuilder Pro.",
  "main": "server.js",
  "scripts": {
    "start": "node backend/server.js",
    "build": "cd frontend && npm install && npm run build",
    "dev": "concurrently \"npm run start\" \"npm start --prefix frontend\""
  },
  "dependencies": {
    "cors": "^2.8.5",
    "express": "^4.19.2",
    "mongoose": "^8.4.3"
  },
  "devDependencies": {
    "concurrently": "^8.2.2"
  }
}`
