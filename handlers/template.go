package handlers

// dashboardTemplate is the single-page browsing UI: documentation and
// diagram panels plus the chat panel. Content is fetched from /debug so the
// page always reflects the artifacts currently on disk.
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>AI Wiki - Project Documentation</title>
<script src="https://cdn.tailwindcss.com"></script>
<script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
<style>
.prose { max-width: none; }
.toast { position: fixed; top: 20px; right: 20px; z-index: 1000; transition: all 0.3s ease; }
.chat-container { height: 400px; overflow-y: auto; }
</style>
</head>
<body class="bg-gray-50">
<div class="container mx-auto px-4 py-8">
  <div class="bg-white rounded-lg shadow-md p-6 mb-8">
    <h1 class="text-3xl font-bold text-gray-800 mb-2">🤖 AI Wiki</h1>
    <p class="text-gray-600">Auto-generated API documentation</p>
    {{if .DocsAvailable}}
    <div class="mt-4 flex flex-wrap gap-3">
      {{if .HTMLAvailable}}
      <a href="/download/project.html" class="bg-purple-500 hover:bg-purple-600 text-white px-4 py-2 rounded-lg">🎨 Download Visual Documentation</a>
      {{end}}
      <a href="/download/project.md" class="bg-blue-500 hover:bg-blue-600 text-white px-4 py-2 rounded-lg">📄 Download Markdown Docs</a>
      <a href="/download/diagram.md" class="bg-green-500 hover:bg-green-600 text-white px-4 py-2 rounded-lg">📊 Download Diagram</a>
    </div>
    {{end}}
  </div>

  {{if not .DocsAvailable}}
  <div class="bg-yellow-100 border-l-4 border-yellow-500 text-yellow-700 p-4 mb-8 rounded">
    <p class="text-sm"><strong>No documentation found!</strong>
    Run <code class="bg-yellow-200 px-1 rounded">aiwiki generate --target ./your-project --settings aiwiki.yaml</code>
    to generate documentation first.</p>
  </div>
  {{else}}
  <div class="grid grid-cols-1 lg:grid-cols-3 gap-8">
    <div class="lg:col-span-2">
      <div class="bg-white rounded-lg shadow-md p-6">
        <h2 class="text-2xl font-bold text-gray-800 mb-4">📚 Documentation</h2>
        <div class="prose prose-sm max-w-none" id="docs-content"></div>
      </div>
      <div class="bg-white rounded-lg shadow-md p-6 mt-8">
        <h2 class="text-2xl font-bold text-gray-800 mb-4">🎨 Entity Relationship Diagram</h2>
        <div id="diagram-content" class="text-center"></div>
      </div>
    </div>
    <div class="lg:col-span-1">
      <div class="bg-white rounded-lg shadow-md p-6 sticky top-8">
        <h2 class="text-2xl font-bold text-gray-800 mb-4">💬 Ask AI</h2>
        <p class="text-gray-600 text-sm mb-4">Ask questions about the project documentation.</p>
        <div class="chat-container bg-gray-50 rounded-lg p-4 mb-4" id="chat-messages">
          <div class="text-gray-500 text-sm text-center">Start a conversation by asking a question below!</div>
        </div>
        <div class="flex space-x-2">
          <input type="text" id="question-input" placeholder="Ask about the project..."
                 class="flex-1 border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500">
          <button id="ask-button" class="bg-blue-500 hover:bg-blue-600 text-white px-4 py-2 rounded-lg">Send</button>
        </div>
      </div>
    </div>
  </div>
  {{end}}
</div>

<div id="toast-container"></div>

<script>
mermaid.initialize({ startOnLoad: true, theme: 'default' });
var docsAvailable = {{.DocsAvailable}};

document.addEventListener('DOMContentLoaded', function() {
  if (!docsAvailable) return;
  loadDocumentation();
  setupChat();
});

function loadDocumentation() {
  fetch('/debug')
    .then(function(r) { return r.json(); })
    .then(function(data) {
      var docsDiv = document.getElementById('docs-content');
      if (data.html_available) {
        docsDiv.innerHTML = '<div class="bg-purple-50 border border-purple-200 text-purple-800 px-4 py-3 rounded cursor-pointer hover:bg-purple-100">' +
          '<strong>🎨 Visual Documentation Available</strong><br>' +
          'Styled HTML documentation (' + Math.round(data.html_content_length/1000) + 'KB).<br><br>' +
          '<strong>👆 Click to view visual documentation</strong></div>';
        docsDiv.onclick = function() { window.open('/view/html', '_blank'); };
      } else {
        docsDiv.innerHTML = '<div class="whitespace-pre-wrap text-sm cursor-pointer hover:bg-gray-100 p-2 border rounded">' +
          'Documentation loaded (' + data.docs_content_length + ' characters).<br><br>' +
          '<strong>👆 Click to view full documentation</strong></div>';
        docsDiv.onclick = function() { window.open('/view/docs', '_blank'); };
      }

      var diagramDiv = document.getElementById('diagram-content');
      diagramDiv.innerHTML = '<div class="bg-blue-50 border border-blue-200 text-blue-800 px-4 py-3 rounded cursor-pointer hover:bg-blue-100">' +
        '<strong>📊 Interactive Models Overview</strong><br>' +
        'View models and relationships as a searchable table.<br><br>' +
        '<strong>👆 Click to view interactive models</strong></div>';
      diagramDiv.onclick = function() { window.open('/view/diagram', '_blank'); };
    })
    .catch(function(err) {
      document.getElementById('docs-content').innerHTML = '<p class="text-red-500">Error loading documentation</p>';
    });
}

function setupChat() {
  var button = document.getElementById('ask-button');
  var input = document.getElementById('question-input');
  button.addEventListener('click', askQuestion);
  input.addEventListener('keypress', function(e) { if (e.key === 'Enter') askQuestion(); });
}

function askQuestion() {
  var input = document.getElementById('question-input');
  var question = input.value.trim();
  if (!question) return;

  addMessage('user', question);
  input.value = '';

  var button = document.getElementById('ask-button');
  button.disabled = true;
  button.textContent = 'Thinking...';

  fetch('/ask', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ question: question })
  })
  .then(function(r) {
    if (!r.ok) throw new Error('HTTP ' + r.status);
    return r.json();
  })
  .then(function(data) {
    if (data.error) {
      addMessage('error', data.error);
    } else {
      addMessage('ai', data.answer);
    }
  })
  .catch(function(err) {
    addMessage('error', 'Failed to get response: ' + err.message);
  })
  .finally(function() {
    button.disabled = false;
    button.textContent = 'Send';
  });
}

function addMessage(type, content) {
  var chat = document.getElementById('chat-messages');
  var div = document.createElement('div');
  div.className = 'mb-3 ' + (type === 'user' ? 'text-right' : 'text-left');

  var style, icon;
  if (type === 'user') { style = 'bg-blue-500 text-white'; icon = '👤'; }
  else if (type === 'ai') { style = 'bg-gray-200 text-gray-800'; icon = '🤖'; }
  else { style = 'bg-red-100 text-red-800'; icon = '❌'; }

  div.innerHTML = '<div class="inline-block ' + style + ' rounded-lg px-3 py-2 max-w-xs text-sm">' +
    '<span class="text-xs">' + icon + '</span> ' + content + '</div>';
  chat.appendChild(div);
  chat.scrollTop = chat.scrollHeight;

  var initial = chat.querySelector('.text-gray-500');
  if (initial) initial.remove();
}
</script>
</body>
</html>
`
